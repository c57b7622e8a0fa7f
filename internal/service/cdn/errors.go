package cdn

import (
	"errors"
	"fmt"
)

// ErrNoProviderConfigured は設定済みのプロバイダーが1つもない場合のエラー
var ErrNoProviderConfigured = errors.New("CDNの設定が1つもありません。cloudflare, cloudfront, fastly, maxcdn, rackspace のいずれかを設定してください")

// ErrAborted はオペレーターが処理を中断した場合のエラー
var ErrAborted = errors.New("オペレーターにより中断されました")

// ConfigurationError はプロバイダー設定の不備を表す
type ConfigurationError struct {
	Provider ProviderKey
	Key      string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("設定キー %s.%s が不正です: %s", e.Provider, e.Key, e.Reason)
	}
	return fmt.Sprintf("設定キー %s.%s がありません", e.Provider, e.Key)
}

// MissingKey は必須キーが空の場合のConfigurationErrorを作成する
func MissingKey(provider ProviderKey, key string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Key: key}
}

// InvalidKey は値の形式が不正な場合のConfigurationErrorを作成する
func InvalidKey(provider ProviderKey, key, reason string) *ConfigurationError {
	return &ConfigurationError{Provider: provider, Key: key, Reason: reason}
}

// IsConfigurationError はerrがConfigurationErrorかどうかを返す
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
