package cloudflare

import (
	"context"

	"github.com/cloudflare/cloudflare-go/v6/cache"
	"github.com/cloudflare/cloudflare-go/v6/option"
	"github.com/cloudflare/cloudflare-go/v6/packages/pagination"
	"github.com/cloudflare/cloudflare-go/v6/zones"
)

//go:generate moq -out mocks/cache_service.go -pkg mocks . CacheService
//go:generate moq -out mocks/zone_service.go -pkg mocks . ZoneService

// CacheService はCloudFlareのキャッシュ操作
type CacheService interface {
	Purge(ctx context.Context, params cache.CachePurgeParams, opts ...option.RequestOption) (*cache.CachePurgeResponse, error)
}

// ZoneService はゾーン名からゾーンIDを引くための操作
type ZoneService interface {
	List(ctx context.Context, params zones.ZoneListParams, opts ...option.RequestOption) (*pagination.V4PagePaginationArray[zones.Zone], error)
}
