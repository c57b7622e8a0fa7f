package cloudflare_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/cloudflare/cloudflare-go/v6/cache"
	"github.com/cloudflare/cloudflare-go/v6/option"
	"github.com/cloudflare/cloudflare-go/v6/packages/pagination"
	"github.com/cloudflare/cloudflare-go/v6/zones"
	. "github.com/smartystreets/goconvey/convey"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/cdn/cdntest"
	"cdntk/internal/service/cloudflare"
	"cdntk/internal/service/cloudflare/mocks"
)

const testZoneID = "0123456789abcdef0123456789abcdef"

func makeFiles(n int) []string {
	files := make([]string, n)
	for i := range files {
		files[i] = fmt.Sprintf("/page-%02d.html", i)
	}
	return files
}

// purgeBody はパージ要求の本文を取り出す。本文はユニオン型のインターフェース
func purgeBody(params cache.CachePurgeParams) cache.CachePurgeParamsBody {
	body, _ := params.Body.(cache.CachePurgeParamsBody)
	return body
}

func purgedURL(params cache.CachePurgeParams) string {
	urls, _ := purgeBody(params).Files.Value.([]string)
	if len(urls) != 1 {
		return ""
	}
	return urls[0]
}

func TestInvalidate(t *testing.T) {
	Convey("Given a CloudFlare provider with a mock CacheService", t, func() {
		t.Setenv("CLOUDFLARE_CLIENT_API_KEY", "")
		t.Setenv("CLOUDFLARE_EMAIL", "")
		ctx := context.Background()

		mockCacheService := &mocks.CacheServiceMock{
			PurgeFunc: func(ctx context.Context, params cache.CachePurgeParams, opts ...option.RequestOption) (*cache.CachePurgeResponse, error) {
				return &cache.CachePurgeResponse{}, nil
			},
		}
		mockZoneService := &mocks.ZoneServiceMock{
			ListFunc: func(ctx context.Context, params zones.ZoneListParams, opts ...option.RequestOption) (*pagination.V4PagePaginationArray[zones.Zone], error) {
				return &pagination.V4PagePaginationArray[zones.Zone]{Result: []zones.Zone{{ID: testZoneID, Name: params.Name.Value}}}, nil
			},
		}

		cfg := &config.CloudFlare{
			ClientAPIKey: "key",
			Email:        "ops@example.com",
			Zone:         "example.com",
			BaseURLs:     []any{"http://example.com", "https://example.com"},
		}
		reporter := &cdntest.Reporter{}
		provider := cloudflare.NewProvider(cfg, reporter, 1)
		provider.NewServices = func(cfg *config.CloudFlare) cloudflare.Services {
			return cloudflare.Services{Cache: mockCacheService, Zones: mockZoneService}
		}

		Convey("When invalidating a few files", func() {
			files := []string{"/index.html", "/", "/test/index.html", "/test/image.png"}
			result, err := provider.Invalidate(ctx, files, false)

			Convey("Then each file is purged for each base url in order", func() {
				So(err, ShouldBeNil)
				calls := mockCacheService.PurgeCalls()
				So(len(calls), ShouldEqual, 8)

				var urls []string
				for _, c := range calls {
					So(c.Params.ZoneID.Value, ShouldEqual, testZoneID)
					urls = append(urls, purgedURL(c.Params))
				}
				So(urls, ShouldResemble, []string{
					"http://example.com/index.html",
					"http://example.com/",
					"http://example.com/test/index.html",
					"http://example.com/test/image.png",
					"https://example.com/index.html",
					"https://example.com/",
					"https://example.com/test/index.html",
					"https://example.com/test/image.png",
				})

				succeeded, failed := result.Counts()
				So(succeeded, ShouldEqual, 8)
				So(failed, ShouldEqual, 0)
			})

			Convey("And the zone name is resolved once", func() {
				So(len(mockZoneService.ListCalls()), ShouldEqual, 1)
				So(mockZoneService.ListCalls()[0].Params.Name.Value, ShouldEqual, "example.com")
			})
		})

		Convey("When invalidating 51 files", func() {
			result, err := provider.Invalidate(ctx, makeFiles(51), false)

			Convey("Then the whole zone is purged once", func() {
				So(err, ShouldBeNil)
				calls := mockCacheService.PurgeCalls()
				So(len(calls), ShouldEqual, 1)
				So(purgeBody(calls[0].Params).PurgeEverything.Value, ShouldBeTrue)
				So(len(result.Outcomes), ShouldEqual, 1)
			})
		})

		Convey("When invalidating exactly 50 files", func() {
			_, err := provider.Invalidate(ctx, makeFiles(50), false)

			Convey("Then every file is purged for every base url", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 100)
			})
		})

		Convey("When 51 files are invalidated with zone purging disabled", func() {
			disabled := false
			cfg.InvalidateZoneForManyFiles = &disabled
			_, err := provider.Invalidate(ctx, makeFiles(51), false)

			Convey("Then files are purged individually", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 102)
			})
		})

		Convey("When the filter matches everything", func() {
			_, err := provider.Invalidate(ctx, makeFiles(2), true)

			Convey("Then the whole zone is purged", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 1)
				So(purgeBody(mockCacheService.PurgeCalls()[0].Params).PurgeEverything.Value, ShouldBeTrue)
			})
		})

		Convey("When one purge fails", func() {
			mockCacheService.PurgeFunc = func(ctx context.Context, params cache.CachePurgeParams, opts ...option.RequestOption) (*cache.CachePurgeResponse, error) {
				if purgedURL(params) == "http://example.com/page-01.html" {
					return nil, errors.New("purge failed")
				}
				return &cache.CachePurgeResponse{}, nil
			}
			result, err := provider.Invalidate(ctx, makeFiles(3), false)

			Convey("Then the remaining files are still purged", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 6)
				succeeded, failed := result.Counts()
				So(succeeded, ShouldEqual, 5)
				So(failed, ShouldEqual, 1)
				So(reporter.Contains("http://example.com/page-01.html|purge failed"), ShouldBeTrue)
			})
		})

		Convey("When the zone is given as an id", func() {
			cfg.Zone = testZoneID
			_, err := provider.Invalidate(ctx, makeFiles(1), false)

			Convey("Then no zone lookup is made", func() {
				So(err, ShouldBeNil)
				So(mockZoneService.ListCalls(), ShouldBeEmpty)
			})
		})

		Convey("When the zone does not exist", func() {
			mockZoneService.ListFunc = func(ctx context.Context, params zones.ZoneListParams, opts ...option.RequestOption) (*pagination.V4PagePaginationArray[zones.Zone], error) {
				return &pagination.V4PagePaginationArray[zones.Zone]{}, nil
			}
			_, err := provider.Invalidate(ctx, makeFiles(1), false)

			Convey("Then the provider aborts", func() {
				So(cdn.IsConfigurationError(err), ShouldBeTrue)
				So(mockCacheService.PurgeCalls(), ShouldBeEmpty)
			})
		})

		Convey("When the email is missing", func() {
			cfg.Email = ""
			_, err := provider.Invalidate(ctx, makeFiles(1), false)

			Convey("Then cloudflare.email is reported without any call", func() {
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "cloudflare.email")
				So(mockCacheService.PurgeCalls(), ShouldBeEmpty)
				So(mockZoneService.ListCalls(), ShouldBeEmpty)
			})
		})

		Convey("When the email comes from the environment", func() {
			t.Setenv("CLOUDFLARE_EMAIL", "env@example.com")
			cfg.Email = ""
			_, err := provider.Invalidate(ctx, makeFiles(1), false)

			Convey("Then the provider runs and the configuration is unchanged", func() {
				So(err, ShouldBeNil)
				So(cfg.Email, ShouldEqual, "")
			})
		})

		Convey("When base_urls is a single string", func() {
			cfg.BaseURLs = "https://example.com"
			_, err := provider.Invalidate(ctx, makeFiles(2), false)

			Convey("Then it is treated as a one element list", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 2)
			})
		})

		Convey("When base_urls is an empty list", func() {
			cfg.BaseURLs = []any{}
			_, err := provider.Invalidate(ctx, makeFiles(2), false)

			Convey("Then a configuration error names base_urls", func() {
				So(cdn.IsConfigurationError(err), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "cloudflare.base_urls")
				So(mockCacheService.PurgeCalls(), ShouldBeEmpty)
			})
		})

		Convey("When running with several workers", func() {
			provider.Concurrency = 4
			result, err := provider.Invalidate(ctx, makeFiles(10), false)

			Convey("Then every url is purged and outcomes keep input order", func() {
				So(err, ShouldBeNil)
				So(len(mockCacheService.PurgeCalls()), ShouldEqual, 20)

				var urls []string
				for _, c := range mockCacheService.PurgeCalls() {
					urls = append(urls, purgedURL(c.Params))
				}
				So(urls, ShouldContain, "https://example.com/page-05.html")
				So(result.Outcomes[0].Unit, ShouldEqual, "http://example.com/page-00.html")
				So(result.Outcomes[19].Unit, ShouldEqual, "https://example.com/page-09.html")
			})
		})
	})
}
