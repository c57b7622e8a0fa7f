package cdn

import "context"

// ProviderKey は設定ファイル上のCDNプロバイダーのキー
type ProviderKey string

const (
	CloudFlare ProviderKey = "cloudflare"
	CloudFront ProviderKey = "cloudfront"
	Fastly     ProviderKey = "fastly"
	MaxCDN     ProviderKey = "maxcdn"
	Rackspace  ProviderKey = "rackspace"
)

// Order はプロバイダーを実行する固定順序
var Order = []ProviderKey{CloudFlare, CloudFront, Fastly, MaxCDN, Rackspace}

//go:generate mockgen -destination=mocks/provider.go -package=mocks . Provider

// Provider は各CDNの無効化処理を共通の形で扱うためのインターフェース
type Provider interface {
	// Key はプロバイダーのキーを返す
	Key() ProviderKey

	// RequiredConfigKeys はネットワーク呼び出し前に検証する必須設定キーを返す
	RequiredConfigKeys() []string

	// Invalidate はファイル一覧を無効化する。
	// 戻り値のerrorはプロバイダー単位の致命的エラー（設定不備など）で、
	// ファイル単位・バッチ単位の失敗はResult.Outcomesに記録される
	Invalidate(ctx context.Context, files []string, matchesEverything bool) (Result, error)
}

// Reporter はオペレーター向けの進捗表示先
type Reporter interface {
	Info(label, msg string)
	Warn(label, msg string)
	Error(label, msg string)
	Unit(label, unit string, err error)
}

// Outcome は1つの処理単位（ファイル・バッチ・ゾーン）の結果
type Outcome struct {
	Unit string
	Err  error
}

// Success は処理単位が成功したかどうかを返す
func (o Outcome) Success() bool {
	return o.Err == nil
}

// Result はプロバイダー1つ分の実行結果
type Result struct {
	Provider ProviderKey
	Outcomes []Outcome
	Err      error // プロバイダー単位の致命的エラー
}

// Counts は成功数と失敗数を返す
func (r Result) Counts() (succeeded, failed int) {
	for _, o := range r.Outcomes {
		if o.Success() {
			succeeded++
		} else {
			failed++
		}
	}
	return
}

// Failed はプロバイダー自体の失敗、または処理単位の失敗を含むかどうかを返す
func (r Result) Failed() bool {
	if r.Err != nil {
		return true
	}
	_, failed := r.Counts()
	return failed > 0
}

// Report は1回の無効化実行全体の結果
type Report struct {
	Files   []string
	Results []Result
}

// Failed はいずれかのプロバイダーで失敗があったかどうかを返す
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Failed() {
			return true
		}
	}
	return false
}

// AllFatal は実行した全プロバイダーが致命的エラーで終了したかどうかを返す
func (r *Report) AllFatal() bool {
	if len(r.Results) == 0 {
		return false
	}
	for _, res := range r.Results {
		if res.Err == nil {
			return false
		}
	}
	return true
}

// Request はディスパッチャーへの入力
type Request struct {
	Files             []string
	Filter            string // 空の場合はファイルが明示的に指定されたもの
	MatchesEverything bool
}
