package rackspace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/hashicorp/go-cleanhttp"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/itchyny/gojq"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultIdentityURL はRackspace Identity APIのトークン発行エンドポイント
	DefaultIdentityURL = "https://identity.api.rackspacecloud.com/v2.0/tokens"

	// ServiceTypeCDN はサービスカタログ上のCDNのサービス種別
	ServiceTypeCDN = "rax:object-cdn"

	endpointCacheSize = 32
)

// ErrEndpointNotFound はサービスカタログに該当するエンドポイントがない場合のエラー
var ErrEndpointNotFound = errors.New("サービスカタログにエンドポイントが見つかりません")

var (
	tokenQuery    = mustCompile(`.access.token.id`)
	endpointQuery = mustCompile(`.access.serviceCatalog[]? | select(.type == $type) | .endpoints[]? | select(.region == $region) | .publicURL`, "$type", "$region")
)

func mustCompile(src string, variables ...string) *gojq.Code {
	query, err := gojq.Parse(src)
	if err != nil {
		panic(err)
	}
	code, err := gojq.Compile(query, gojq.WithVariables(variables))
	if err != nil {
		panic(err)
	}
	return code
}

// session は認証済みの状態。認証に成功した場合のみ作成される
type session struct {
	token   string
	catalog any // トークン発行レスポンス全体
}

// Client はRackspace CDNのAPIクライアント。
// 最初の呼び出しで認証し、成功した認証結果はプロセス内で使い回す（期限切れは検知しない）。
// 認証に失敗した場合は何も保持せず、次の呼び出しで再度認証する
type Client struct {
	Username    string
	APIKey      string
	IdentityURL string
	HTTPClient  *http.Client

	mu        sync.Mutex
	session   *session
	auth      singleflight.Group
	endpoints *lru.Cache[string, string]
}

// NewClient はClientを作成する
func NewClient(username, apiKey string) *Client {
	endpoints, _ := lru.New[string, string](endpointCacheSize)
	return &Client{
		Username:    username,
		APIKey:      apiKey,
		IdentityURL: DefaultIdentityURL,
		HTTPClient:  cleanhttp.DefaultPooledClient(),
		endpoints:   endpoints,
	}
}

// Reauthenticate は保持している認証結果を破棄し、次の呼び出しで再認証させる。
// 呼び出し側が明示的に使う場合のみ破棄される
func (c *Client) Reauthenticate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.endpoints.Purge()
}

func (c *Client) currentSession() *session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// authenticate は認証済みのセッションを返す。
// 同時に呼ばれた場合もトークン発行のリクエストは1回だけ行う。
// リクエストは最初の呼び出し元のキャンセルに影響されない
func (c *Client) authenticate(ctx context.Context) (*session, error) {
	if s := c.currentSession(); s != nil {
		return s, nil
	}

	exchangeCtx := context.WithoutCancel(ctx)
	ch := c.auth.DoChan("auth", func() (any, error) {
		if s := c.currentSession(); s != nil {
			return s, nil
		}
		s, err := c.requestToken(exchangeCtx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.session = s
		c.mu.Unlock()
		return s, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		log.Debug().Bool("shared", res.Shared).Msg("rackspace authenticated")
		return res.Val.(*session), nil
	}
}

func (c *Client) requestToken(ctx context.Context) (*session, error) {
	payload := map[string]any{
		"auth": map[string]any{
			"RAX-KSKEY:apiKeyCredentials": map[string]string{
				"username": c.Username,
				"apiKey":   c.APIKey,
			},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.IdentityURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("認証リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("認証リクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("認証レスポンスの読み込みに失敗: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%d, 認証でエラーが発生しました。 %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("認証レスポンスの解析に失敗: %w", err)
	}
	token, err := first(ctx, tokenQuery, doc)
	if err != nil || token == "" {
		return nil, errors.New("認証レスポンスにトークンがありません")
	}
	return &session{token: token, catalog: doc}, nil
}

// Endpoint はサービス種別とリージョンに対応する publicURL を返す
func (c *Client) Endpoint(ctx context.Context, serviceType, region string) (string, error) {
	s, err := c.authenticate(ctx)
	if err != nil {
		return "", err
	}

	key := serviceType + "|" + region
	if endpoint, ok := c.endpoints.Get(key); ok {
		return endpoint, nil
	}

	endpoint, err := first(ctx, endpointQuery, s.catalog, serviceType, region)
	if err != nil {
		return "", err
	}
	if endpoint == "" {
		return "", fmt.Errorf("%w: %s (%s)", ErrEndpointNotFound, serviceType, region)
	}
	c.endpoints.Add(key, endpoint)
	return endpoint, nil
}

// Invalidate はコンテナ内の1ファイルをCDNから削除する
func (c *Client) Invalidate(ctx context.Context, region, container, file, notificationEmail string) error {
	s, err := c.authenticate(ctx)
	if err != nil {
		return err
	}
	endpoint, err := c.Endpoint(ctx, ServiceTypeCDN, region)
	if err != nil {
		return err
	}

	target := strings.TrimRight(endpoint, "/") + "/" + container + (&url.URL{Path: file}).EscapedPath()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("X-Auth-Token", s.token)
	if strings.TrimSpace(notificationEmail) != "" {
		req.Header.Set("X-Purge-Email", notificationEmail)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("リクエストに失敗: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNoContent:
		return nil
	case http.StatusBadRequest:
		if reason := resp.Header.Get("X-Purge-Failed-Reason"); reason != "" {
			return fmt.Errorf("400, %s", reason)
		}
		return errors.New("400, エラーが発生しました")
	case http.StatusForbidden:
		return errors.New("403, サーバーがリクエストを拒否しました。認証情報を確認してください")
	case http.StatusNotFound:
		return errors.New("404, 指定したリソースが見つかりませんでした")
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%d, エラーが発生しました。 %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
}

// first はクエリの最初の文字列の結果を返す。結果がなければ空文字
func first(ctx context.Context, code *gojq.Code, input any, values ...any) (string, error) {
	iter := code.RunWithContext(ctx, input, values...)
	for {
		v, ok := iter.Next()
		if !ok {
			return "", nil
		}
		if err, isErr := v.(error); isErr {
			return "", err
		}
		if s, isStr := v.(string); isStr {
			return s, nil
		}
	}
}
