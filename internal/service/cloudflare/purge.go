// Package cloudflare はCloudFlareのキャッシュパージを行う
package cloudflare

import (
	"context"
	"fmt"
	"regexp"

	"github.com/cloudflare/cloudflare-go/v6"
	"github.com/cloudflare/cloudflare-go/v6/cache"
	"github.com/cloudflare/cloudflare-go/v6/option"
	"github.com/cloudflare/cloudflare-go/v6/zones"
	"github.com/rs/zerolog/log"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

// ZonePurgeThreshold を超えるファイル数の場合はゾーン全体をパージする
const ZonePurgeThreshold = 50

var zoneIDPattern = regexp.MustCompile(`^[0-9a-f]{32}$`)

// Services はCloudFlare APIのうちこのパッケージが使うもの
type Services struct {
	Cache CacheService
	Zones ZoneService
}

// Provider はCloudFlareのプロバイダー
type Provider struct {
	Config      *config.CloudFlare
	Reporter    cdn.Reporter
	Concurrency int

	NewServices func(cfg *config.CloudFlare) Services
}

// NewProvider はcloudflare-goのクライアントを使うProviderを作成する
func NewProvider(cfg *config.CloudFlare, reporter cdn.Reporter, concurrency int) *Provider {
	return &Provider{
		Config:      cfg,
		Reporter:    reporter,
		Concurrency: concurrency,
		NewServices: newServices,
	}
}

func newServices(cfg *config.CloudFlare) Services {
	client := cloudflare.NewClient(
		option.WithAPIKey(cfg.ClientAPIKey),
		option.WithAPIEmail(cfg.Email),
		option.WithMaxRetries(0),
	)
	return Services{Cache: client.Cache, Zones: client.Zones}
}

func (p *Provider) Key() cdn.ProviderKey {
	return cdn.CloudFlare
}

func (p *Provider) RequiredConfigKeys() []string {
	return []string{"client_api_key", "email", "zone", "base_urls"}
}

// ExampleConfiguration は設定ファイルの例を返す
func ExampleConfiguration() string {
	return `cloudflare:
  client_api_key: ""                      # 空の場合は環境変数 CLOUDFLARE_CLIENT_API_KEY
  email: ""                               # 空の場合は環境変数 CLOUDFLARE_EMAIL
  zone: example.com                       # ゾーン名またはゾーンID
  base_urls:
    - http://example.com
    - https://example.com
  invalidate_zone_for_many_files: true    # 50件を超える場合はゾーン全体をパージ（デフォルト: true）
`
}

// Invalidate はファイルごと・ベースURLごとにパージする。
// 全ファイルが対象の場合、または件数が多い場合はゾーン全体を1回でパージする
func (p *Provider) Invalidate(ctx context.Context, files []string, matchesEverything bool) (cdn.Result, error) {
	cfg, err := config.Clone(p.Config)
	if err != nil {
		return cdn.Result{}, err
	}
	if err := cfg.ApplyEnvDefaults(); err != nil {
		return cdn.Result{}, err
	}
	if key := config.FirstMissingKey(cfg); key != "" {
		return cdn.Result{}, cdn.MissingKey(cdn.CloudFlare, key)
	}
	baseURLs, err := config.NormalizeBaseURLs(cfg.BaseURLs)
	if err != nil {
		return cdn.Result{}, cdn.InvalidKey(cdn.CloudFlare, "base_urls", err.Error())
	}

	services := p.NewServices(cfg)
	zoneID, err := resolveZoneID(ctx, services.Zones, cfg.Zone)
	if err != nil {
		return cdn.Result{}, err
	}

	label := string(cdn.CloudFlare)
	result := cdn.Result{Provider: cdn.CloudFlare}

	if matchesEverything || (len(files) > ZonePurgeThreshold && cfg.ZoneForManyFiles()) {
		unit := "ゾーン " + cfg.Zone
		p.Reporter.Info(label, fmt.Sprintf(common.ProcessingFormat, common.ProcessIcon, unit+" 全体のパージ"))
		err := purge(ctx, services.Cache, zoneID, cache.CachePurgeParamsBody{
			PurgeEverything: cloudflare.F(true),
		})
		p.Reporter.Unit(label, unit, err)
		result.Outcomes = append(result.Outcomes, cdn.Outcome{Unit: unit, Err: err})
		return result, nil
	}

	urls := make([]string, 0, len(baseURLs)*len(files))
	for _, baseURL := range baseURLs {
		for _, file := range files {
			urls = append(urls, baseURL+file)
		}
	}

	result.Outcomes = make([]cdn.Outcome, len(urls))
	common.RunIndexed(p.Concurrency, len(urls), func(i int) {
		err := purge(ctx, services.Cache, zoneID, cache.CachePurgeParamsBody{
			Files: cloudflare.F[any]([]string{urls[i]}),
		})
		p.Reporter.Unit(label, urls[i], err)
		result.Outcomes[i] = cdn.Outcome{Unit: urls[i], Err: err}
	})
	return result, nil
}

func purge(ctx context.Context, svc CacheService, zoneID string, body cache.CachePurgeParamsBody) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := svc.Purge(ctx, cache.CachePurgeParams{
		ZoneID: cloudflare.F(zoneID),
		Body:   body,
	})
	return err
}

// resolveZoneID はゾーンIDが指定されていればそのまま使い、ゾーン名の場合はAPIで検索する
func resolveZoneID(ctx context.Context, svc ZoneService, zone string) (string, error) {
	if zoneIDPattern.MatchString(zone) {
		return zone, nil
	}

	page, err := svc.List(ctx, zones.ZoneListParams{Name: cloudflare.F(zone)})
	if err != nil {
		return "", fmt.Errorf(common.ResolveErrorFormat, common.ErrorIcon, "ゾーン "+zone, err)
	}
	if page == nil || len(page.Result) == 0 {
		return "", cdn.InvalidKey(cdn.CloudFlare, "zone", fmt.Sprintf("ゾーン '%s' が見つかりませんでした", zone))
	}

	log.Debug().Str("zone", zone).Str("zone_id", page.Result[0].ID).Msg("zone resolved")
	return page.Result[0].ID, nil
}
