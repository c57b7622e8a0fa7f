// Package maxcdn はMaxCDNのプルゾーンのキャッシュパージを行う
package maxcdn

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dghubble/oauth1"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/rs/zerolog/log"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
)

// DefaultEndpoint はMaxCDN APIのエンドポイント
const DefaultEndpoint = "https://rws.maxcdn.com"

// Provider はMaxCDNのプロバイダー
type Provider struct {
	Config   *config.MaxCDN
	Reporter cdn.Reporter

	HTTPClient *http.Client // OAuth署名前のクライアント
	Endpoint   string
}

// NewProvider はProviderを作成する
func NewProvider(cfg *config.MaxCDN, reporter cdn.Reporter) *Provider {
	return &Provider{
		Config:     cfg,
		Reporter:   reporter,
		HTTPClient: cleanhttp.DefaultPooledClient(),
		Endpoint:   DefaultEndpoint,
	}
}

func (p *Provider) Key() cdn.ProviderKey {
	return cdn.MaxCDN
}

func (p *Provider) RequiredConfigKeys() []string {
	return []string{"alias", "consumer_key", "consumer_secret", "zone_id"}
}

// ExampleConfiguration は設定ファイルの例を返す
func ExampleConfiguration() string {
	return `maxcdn:
  alias: ""                # 空の場合は環境変数 MAXCDN_ALIAS
  consumer_key: ""         # 空の場合は環境変数 MAXCDN_CONSUMER_KEY
  consumer_secret: ""      # 空の場合は環境変数 MAXCDN_CONSUMER_SECRET
  zone_id: "12345"
`
}

type apiError struct {
	Code  int `json:"code"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Invalidate はファイル一覧を1回のリクエストでパージする
func (p *Provider) Invalidate(ctx context.Context, files []string, _ bool) (cdn.Result, error) {
	cfg, err := config.Clone(p.Config)
	if err != nil {
		return cdn.Result{}, err
	}
	if err := cfg.ApplyEnvDefaults(); err != nil {
		return cdn.Result{}, err
	}
	if key := config.FirstMissingKey(cfg); key != "" {
		return cdn.Result{}, cdn.MissingKey(cdn.MaxCDN, key)
	}

	label := string(cdn.MaxCDN)
	unit := fmt.Sprintf("%d件", len(files))
	p.Reporter.Info(label, fmt.Sprintf("%d件のファイルを無効化しています...", len(files)))

	err = p.purge(ctx, cfg, files)
	p.Reporter.Unit(label, unit, err)
	return cdn.Result{
		Provider: cdn.MaxCDN,
		Outcomes: []cdn.Outcome{{Unit: unit, Err: err}},
	}, nil
}

func (p *Provider) purge(ctx context.Context, cfg *config.MaxCDN, files []string) error {
	endpoint := fmt.Sprintf("%s/%s/zones/pull.json/%s/cache",
		strings.TrimRight(p.Endpoint, "/"), url.PathEscape(cfg.Alias), url.PathEscape(cfg.ZoneID))
	form := url.Values{"files[]": files}

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	// 2-legged OAuthのためトークンは空
	oauthConfig := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	client := oauthConfig.Client(context.WithValue(ctx, oauth1.HTTPClient, p.HTTPClient), oauth1.NewToken("", ""))

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("リクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	log.Debug().Int("status", resp.StatusCode).Int("files", len(files)).Msg("maxcdn purge response")

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		return nil
	}

	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
		return fmt.Errorf("パージに失敗しました (ステータス %d): %s", resp.StatusCode, apiErr.Error.Message)
	}
	return fmt.Errorf("パージに失敗しました (ステータス %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
}
