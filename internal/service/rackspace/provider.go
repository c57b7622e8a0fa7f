// Package rackspace はRackspace Cloud FilesのCDNからファイルを削除する
package rackspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

// DailyLimit はRackspaceが1日に受け付けるCDN削除リクエストの上限
const DailyLimit = 25

// Invalidator は1ファイル単位の削除を行うクライアント
type Invalidator interface {
	Invalidate(ctx context.Context, region, container, file, notificationEmail string) error
}

// Provider はRackspaceのプロバイダー
type Provider struct {
	Config      *config.Rackspace
	Reporter    cdn.Reporter
	Concurrency int

	// Confirm は上限超過時に続行するかどうかを問い合わせる。nilの場合は続行する
	Confirm func(msg string) bool

	NewClient func(cfg *config.Rackspace) Invalidator
}

// NewProvider はProviderを作成する
func NewProvider(cfg *config.Rackspace, reporter cdn.Reporter, concurrency int, confirm func(string) bool) *Provider {
	return &Provider{
		Config:      cfg,
		Reporter:    reporter,
		Concurrency: concurrency,
		Confirm:     confirm,
		NewClient: func(cfg *config.Rackspace) Invalidator {
			return NewClient(cfg.Username, cfg.APIKey)
		},
	}
}

func (p *Provider) Key() cdn.ProviderKey {
	return cdn.Rackspace
}

func (p *Provider) RequiredConfigKeys() []string {
	return []string{"username", "api_key", "region", "container"}
}

// ExampleConfiguration は設定ファイルの例を返す
func ExampleConfiguration() string {
	return `rackspace:
  username: ""             # 空の場合は環境変数 RACKSPACE_USERNAME
  api_key: ""              # 空の場合は環境変数 RACKSPACE_API_KEY
  region: DFW
  container: my-container
  notification_email: ""   # 削除完了の通知先 (任意)
`
}

// Invalidate はファイルごとに削除リクエストを送る。ディレクトリを表すパスは対象外
func (p *Provider) Invalidate(ctx context.Context, files []string, _ bool) (cdn.Result, error) {
	cfg, err := config.Clone(p.Config)
	if err != nil {
		return cdn.Result{}, err
	}
	if err := cfg.ApplyEnvDefaults(); err != nil {
		return cdn.Result{}, err
	}
	if key := config.FirstMissingKey(cfg); key != "" {
		return cdn.Result{}, cdn.MissingKey(cdn.Rackspace, key)
	}

	label := string(cdn.Rackspace)
	targets := make([]string, 0, len(files))
	for _, f := range files {
		if strings.HasSuffix(f, "/") {
			log.Debug().Str("path", f).Msg("rackspace skips directory path")
			continue
		}
		targets = append(targets, f)
	}

	if len(targets) > DailyLimit {
		msg := fmt.Sprintf("%d件のファイルを削除しようとしています。Rackspaceの1日あたりの上限は%d件です", len(targets), DailyLimit)
		p.Reporter.Warn(label, msg)
		if p.Confirm != nil && !p.Confirm("続行する場合はENTERを押してください (中断は Ctrl+C)") {
			return cdn.Result{}, cdn.ErrAborted
		}
	}

	client := p.NewClient(cfg)
	result := cdn.Result{Provider: cdn.Rackspace, Outcomes: make([]cdn.Outcome, len(targets))}
	common.RunIndexed(p.Concurrency, len(targets), func(i int) {
		err := client.Invalidate(ctx, cfg.Region, cfg.Container, targets[i], cfg.NotificationEmail)
		p.Reporter.Unit(label, targets[i], err)
		result.Outcomes[i] = cdn.Outcome{Unit: targets[i], Err: err}
	})
	return result, nil
}
