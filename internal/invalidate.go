package internal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	awsclient "cdntk/internal/aws"
	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/cloudflare"
	"cdntk/internal/service/cloudfront"
	"cdntk/internal/service/fastly"
	"cdntk/internal/service/maxcdn"
	"cdntk/internal/service/rackspace"
	"cdntk/internal/service/selector"
)

// InvalidateOptions は無効化処理のパラメータを格納する構造体
type InvalidateOptions struct {
	Config   *config.Config
	Files    []string // 指定された場合はディレクトリを走査しない
	Reporter cdn.Reporter

	// Confirm はRackspaceの上限超過時の確認。nilの場合は確認せずに続行する
	Confirm func(msg string) bool

	// Progress はCloudFrontの待機表示の出力先
	Progress io.Writer

	// NewSource はテストでファイル一覧の取得元を差し替えるために使う
	NewSource func(ctx context.Context, cfg *config.Config) (selector.Source, error)
}

// Selection はファイル選択の結果
type Selection struct {
	Files             []string
	Filter            string // 明示的なファイル指定の場合は空
	MatchesEverything bool
}

// BuildProviders は設定済みのプロバイダーだけを作成する
func BuildProviders(opts InvalidateOptions) map[cdn.ProviderKey]cdn.Provider {
	cfg := opts.Config
	providers := make(map[cdn.ProviderKey]cdn.Provider)

	if cfg.CloudFlare != nil {
		providers[cdn.CloudFlare] = cloudflare.NewProvider(cfg.CloudFlare, opts.Reporter, cfg.Concurrency)
	}
	if cfg.CloudFront != nil {
		p := cloudfront.NewProvider(cfg.CloudFront, opts.Reporter)
		p.Progress = opts.Progress
		providers[cdn.CloudFront] = p
	}
	if cfg.Fastly != nil {
		providers[cdn.Fastly] = fastly.NewProvider(cfg.Fastly, opts.Reporter, cfg.Concurrency)
	}
	if cfg.MaxCDN != nil {
		providers[cdn.MaxCDN] = maxcdn.NewProvider(cfg.MaxCDN, opts.Reporter)
	}
	if cfg.Rackspace != nil {
		providers[cdn.Rackspace] = rackspace.NewProvider(cfg.Rackspace, opts.Reporter, cfg.Concurrency, opts.Confirm)
	}
	return providers
}

// SelectFiles は無効化するファイル一覧を決定する
func SelectFiles(ctx context.Context, opts InvalidateOptions) (Selection, error) {
	if len(opts.Files) > 0 {
		return Selection{Files: selector.Normalize(opts.Files)}, nil
	}

	cfg := opts.Config
	filter, err := selector.NewFilter(cfg.Filter, cfg.Glob)
	if err != nil {
		return Selection{}, err
	}

	newSource := opts.NewSource
	if newSource == nil {
		newSource = defaultSource
	}
	src, err := newSource(ctx, cfg)
	if err != nil {
		return Selection{}, err
	}
	log.Debug().Str("source", src.String()).Str("filter", filter.String()).Msg("selecting files")

	files, err := selector.Select(ctx, src, filter)
	if err != nil {
		return Selection{}, err
	}
	return Selection{
		Files:             files,
		Filter:            filter.String(),
		MatchesEverything: filter.MatchesEverything(),
	}, nil
}

// defaultSource は source が s3:// の場合はS3、それ以外はビルドディレクトリを返す
func defaultSource(ctx context.Context, cfg *config.Config) (selector.Source, error) {
	if !strings.HasPrefix(cfg.Source, "s3://") {
		root := cfg.BuildDir
		if cfg.Source != "" {
			root = cfg.Source
		}
		return selector.LocalSource{Root: root}, nil
	}

	clients, err := awsclient.NewAwsClients(ctx, awsclient.Context{
		Profile: cfg.AWSProfile,
		Region:  cfg.AWSRegion,
	})
	if err != nil {
		return nil, fmt.Errorf("AWS設定の読み込みに失敗: %w", err)
	}
	return selector.NewS3Source(clients.S3(), cfg.Source)
}

// Invalidate はファイルを選択し、設定済みの全プロバイダーで無効化する
func Invalidate(ctx context.Context, opts InvalidateOptions) (*cdn.Report, error) {
	providers := BuildProviders(opts)
	if len(providers) == 0 {
		return nil, cdn.ErrNoProviderConfigured
	}

	selection, err := SelectFiles(ctx, opts)
	if err != nil {
		return nil, err
	}

	dispatcher := cdn.NewDispatcher(providers, opts.Reporter)
	return dispatcher.Dispatch(ctx, cdn.Request{
		Files:             selection.Files,
		Filter:            selection.Filter,
		MatchesEverything: selection.MatchesEverything,
	})
}
