// Package config はcdntkの設定ファイルと環境変数を読み込む。
//
// 設定ファイル（デフォルト: cdn.yml）はYAMLで、読み込み前に ${VAR} 形式の
// 環境変数参照が展開される。各プロバイダーの認証情報は、設定ファイルで
// 空の場合に限り既定の環境変数から補完される。
package config

import (
	"fmt"
	"os"

	"github.com/a8m/envsubst"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile  = "cdn.yml"
	DefaultFilter      = ".*"
	DefaultBuildDir    = "build"
	DefaultConcurrency = 1
	DefaultLogLevel    = "info"
)

// Settings はツール自体の動作を環境変数で上書きするための設定
type Settings struct {
	ConfigFile string `envconfig:"CDNTK_CONFIG"`
	LogLevel   string `envconfig:"CDNTK_LOG_LEVEL"`
}

// GetSettings はデフォルト値を設定した上で環境変数を反映したSettingsを返す
func GetSettings() (*Settings, error) {
	s := &Settings{
		ConfigFile: DefaultConfigFile,
		LogLevel:   DefaultLogLevel,
	}
	return s, envconfig.Process("", s)
}

// Providers はプロバイダーごとの設定。nilのプロバイダーは未使用
type Providers struct {
	CloudFlare *CloudFlare `yaml:"cloudflare" json:"cloudflare,omitempty"`
	CloudFront *CloudFront `yaml:"cloudfront" json:"cloudfront,omitempty"`
	Fastly     *Fastly     `yaml:"fastly" json:"fastly,omitempty"`
	MaxCDN     *MaxCDN     `yaml:"maxcdn" json:"maxcdn,omitempty"`
	Rackspace  *Rackspace  `yaml:"rackspace" json:"rackspace,omitempty"`
}

// Empty は全プロバイダーが未設定かどうかを返す
func (p Providers) Empty() bool {
	return p.CloudFlare == nil && p.CloudFront == nil && p.Fastly == nil && p.MaxCDN == nil && p.Rackspace == nil
}

// Config は設定ファイル全体
type Config struct {
	Filter      string `yaml:"filter" json:"filter"`           // 正規表現
	Glob        string `yaml:"glob" json:"glob,omitempty"`     // 指定された場合はfilterより優先
	BuildDir    string `yaml:"build_dir" json:"build_dir"`     // ビルド成果物のディレクトリ
	Source      string `yaml:"source" json:"source,omitempty"` // s3://bucket/prefix を指定するとS3から一覧を取得
	Concurrency int    `yaml:"concurrency" json:"concurrency"`
	AWSRegion   string `yaml:"aws_region" json:"aws_region,omitempty"`
	AWSProfile  string `yaml:"aws_profile" json:"aws_profile,omitempty"`

	Providers `yaml:",inline" json:"providers"`
}

// Default はデフォルト値のみのConfigを返す
func Default() *Config {
	return &Config{
		Filter:      DefaultFilter,
		BuildDir:    DefaultBuildDir,
		Concurrency: DefaultConcurrency,
	}
}

// Load は設定ファイルを読み込み、環境変数参照を展開してConfigを返す
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("設定ファイル %s の読み込みに失敗: %w", path, err)
	}

	expanded, err := envsubst.StringRestricted(string(raw), false, false)
	if err != nil {
		return nil, fmt.Errorf("設定ファイル %s の環境変数展開に失敗: %w", path, err)
	}

	cfg, err := Parse([]byte(expanded))
	if err != nil {
		return nil, fmt.Errorf("設定ファイル %s の解析に失敗: %w", path, err)
	}
	return cfg, nil
}

// Parse はYAMLをConfigに変換し、未指定項目にデフォルト値を設定する
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if cfg.Filter == "" {
		cfg.Filter = DefaultFilter
	}
	if cfg.BuildDir == "" {
		cfg.BuildDir = DefaultBuildDir
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultConcurrency
	}
	return cfg, nil
}
