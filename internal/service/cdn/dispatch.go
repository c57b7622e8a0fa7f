package cdn

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// Dispatcher は設定済みのプロバイダーを固定順序で呼び出す
type Dispatcher struct {
	Providers map[ProviderKey]Provider // nilのエントリは未設定として扱う
	Reporter  Reporter
}

// NewDispatcher はDispatcherを作成する
func NewDispatcher(providers map[ProviderKey]Provider, reporter Reporter) *Dispatcher {
	return &Dispatcher{Providers: providers, Reporter: reporter}
}

// Configured は設定済みのプロバイダーキーを実行順に返す
func (d *Dispatcher) Configured() []ProviderKey {
	var keys []ProviderKey
	for _, key := range Order {
		if p, ok := d.Providers[key]; ok && p != nil {
			keys = append(keys, key)
		}
	}
	return keys
}

// Dispatch はファイル一覧を各プロバイダーで無効化する。
// 全プロバイダーが未設定の場合のみエラーを返し、それ以外の失敗はReportに集約する
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (*Report, error) {
	configured := d.Configured()
	if len(configured) == 0 {
		return nil, ErrNoProviderConfigured
	}

	report := &Report{Files: req.Files}

	if req.Filter != "" {
		d.Reporter.Info("", fmt.Sprintf("%d件のファイルを無効化します (フィルタ: %s)", len(req.Files), req.Filter))
	} else {
		d.Reporter.Info("", fmt.Sprintf("%d件のファイルを無効化します", len(req.Files)))
	}
	for _, file := range req.Files {
		d.Reporter.Info("", " • "+file)
	}

	if len(req.Files) == 0 {
		return report, nil
	}

	for _, key := range configured {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, Result{Provider: key, Err: err})
			continue
		}

		logger := log.With().Str("provider", string(key)).Logger()
		logger.Debug().Int("files", len(req.Files)).Bool("matches_everything", req.MatchesEverything).Msg("invalidating")

		result, err := d.Providers[key].Invalidate(ctx, req.Files, req.MatchesEverything)
		result.Provider = key
		if err != nil {
			result.Err = err
			d.Reporter.Error(string(key), err.Error())
			logger.Debug().Err(err).Msg("provider aborted")
		}

		succeeded, failed := result.Counts()
		logger.Debug().Int("succeeded", succeeded).Int("failed", failed).Msg("provider finished")
		report.Results = append(report.Results, result)
	}

	return report, nil
}
