// Package fastly はFastlyのURL単位のパージを行う
package fastly

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

// DefaultEndpoint はFastly APIのエンドポイント
const DefaultEndpoint = "https://api.fastly.com"

// Provider はFastlyのプロバイダー
type Provider struct {
	Config      *config.Fastly
	Reporter    cdn.Reporter
	Concurrency int

	HTTPClient *http.Client
	Endpoint   string
}

// NewProvider はProviderを作成する
func NewProvider(cfg *config.Fastly, reporter cdn.Reporter, concurrency int) *Provider {
	return &Provider{
		Config:      cfg,
		Reporter:    reporter,
		Concurrency: concurrency,
		HTTPClient:  cleanhttp.DefaultPooledClient(),
		Endpoint:    DefaultEndpoint,
	}
}

func (p *Provider) Key() cdn.ProviderKey {
	return cdn.Fastly
}

func (p *Provider) RequiredConfigKeys() []string {
	return []string{"api_key", "base_urls"}
}

// ExampleConfiguration は設定ファイルの例を返す
func ExampleConfiguration() string {
	return `fastly:
  api_key: ""              # 空の場合は環境変数 FASTLY_API_KEY
  base_urls:
    - http://www.example.com
    - https://www.example.com
  soft_purge: false        # trueの場合は削除ではなく期限切れにする
`
}

// Invalidate はベースURLごと・ファイルごとにパージする
func (p *Provider) Invalidate(ctx context.Context, files []string, _ bool) (cdn.Result, error) {
	cfg, err := config.Clone(p.Config)
	if err != nil {
		return cdn.Result{}, err
	}
	if err := cfg.ApplyEnvDefaults(); err != nil {
		return cdn.Result{}, err
	}
	if key := config.FirstMissingKey(cfg); key != "" {
		return cdn.Result{}, cdn.MissingKey(cdn.Fastly, key)
	}
	baseURLs, err := config.NormalizeBaseURLs(cfg.BaseURLs)
	if err != nil {
		return cdn.Result{}, cdn.InvalidKey(cdn.Fastly, "base_urls", err.Error())
	}

	urls := make([]string, 0, len(baseURLs)*len(files))
	for _, baseURL := range baseURLs {
		for _, file := range files {
			urls = append(urls, baseURL+file)
		}
	}

	label := string(cdn.Fastly)
	result := cdn.Result{Provider: cdn.Fastly, Outcomes: make([]cdn.Outcome, len(urls))}
	common.RunIndexed(p.Concurrency, len(urls), func(i int) {
		err := p.purge(ctx, cfg, urls[i])
		p.Reporter.Unit(label, urls[i], err)
		result.Outcomes[i] = cdn.Outcome{Unit: urls[i], Err: err}
	})
	return result, nil
}

// purge は1つのURLをパージする
func (p *Provider) purge(ctx context.Context, cfg *config.Fastly, target string) error {
	endpoint, err := p.purgeURL(target)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Fastly-Key", cfg.APIKey)
	req.Header.Set("Accept", "application/json")
	if cfg.SoftPurge {
		req.Header.Set("Fastly-Soft-Purge", "1")
	}

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("リクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("パージに失敗しました (ステータス %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

// purgeURL はパージ対象のURLからAPIのURLを作る。対象はスキームを除いた host/path で指定する
func (p *Provider) purgeURL(target string) (string, error) {
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("URL %s の解析に失敗: %w", target, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL %s にホスト名がありません", target)
	}
	return strings.TrimRight(p.Endpoint, "/") + "/purge/" + u.Host + u.EscapedPath(), nil
}
