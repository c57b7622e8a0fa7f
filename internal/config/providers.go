package config

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/kelseyhightower/envconfig"
)

// CloudFlare はCloudFlareの設定
type CloudFlare struct {
	ClientAPIKey               string `yaml:"client_api_key" json:"-" validate:"notblank"`
	Email                      string `yaml:"email" json:"email" validate:"notblank"`
	Zone                       string `yaml:"zone" json:"zone" validate:"notblank"`
	BaseURLs                   any    `yaml:"base_urls" json:"base_urls" validate:"required"`
	InvalidateZoneForManyFiles *bool  `yaml:"invalidate_zone_for_many_files" json:"invalidate_zone_for_many_files,omitempty"`
}

type cloudFlareEnv struct {
	ClientAPIKey string `envconfig:"CLOUDFLARE_CLIENT_API_KEY"`
	Email        string `envconfig:"CLOUDFLARE_EMAIL"`
}

// ApplyEnvDefaults は空の認証情報を環境変数で補完する
func (c *CloudFlare) ApplyEnvDefaults() error {
	var env cloudFlareEnv
	if err := envconfig.Process("", &env); err != nil {
		return err
	}
	fillBlank(&c.ClientAPIKey, env.ClientAPIKey)
	fillBlank(&c.Email, env.Email)
	return nil
}

// ZoneForManyFiles は invalidate_zone_for_many_files の値を返す（デフォルト: true）
func (c *CloudFlare) ZoneForManyFiles() bool {
	if c.InvalidateZoneForManyFiles == nil {
		return true
	}
	return *c.InvalidateZoneForManyFiles
}

// CloudFront はCloudFrontの設定
type CloudFront struct {
	AccessKeyID     string `yaml:"access_key_id" json:"-" validate:"notblank"`
	SecretAccessKey string `yaml:"secret_access_key" json:"-" validate:"notblank"`
	DistributionID  string `yaml:"distribution_id" json:"distribution_id" validate:"required_without=StackName"`
	StackName       string `yaml:"stack_name" json:"stack_name,omitempty"`
	Region          string `yaml:"region" json:"region,omitempty"`
}

type cloudFrontEnv struct {
	AccessKeyID     string `envconfig:"AWS_ACCESS_KEY_ID"`
	SecretAccessKey string `envconfig:"AWS_SECRET_ACCESS_KEY"`
}

// ApplyEnvDefaults は空の認証情報を環境変数で補完する
func (c *CloudFront) ApplyEnvDefaults() error {
	var env cloudFrontEnv
	if err := envconfig.Process("", &env); err != nil {
		return err
	}
	fillBlank(&c.AccessKeyID, env.AccessKeyID)
	fillBlank(&c.SecretAccessKey, env.SecretAccessKey)
	return nil
}

// Fastly はFastlyの設定
type Fastly struct {
	APIKey    string `yaml:"api_key" json:"-" validate:"notblank"`
	BaseURLs  any    `yaml:"base_urls" json:"base_urls" validate:"required"`
	SoftPurge bool   `yaml:"soft_purge" json:"soft_purge,omitempty"`
}

type fastlyEnv struct {
	APIKey string `envconfig:"FASTLY_API_KEY"`
}

// ApplyEnvDefaults は空の認証情報を環境変数で補完する
func (c *Fastly) ApplyEnvDefaults() error {
	var env fastlyEnv
	if err := envconfig.Process("", &env); err != nil {
		return err
	}
	fillBlank(&c.APIKey, env.APIKey)
	return nil
}

// MaxCDN はMaxCDNの設定
type MaxCDN struct {
	Alias          string `yaml:"alias" json:"alias" validate:"notblank"`
	ConsumerKey    string `yaml:"consumer_key" json:"-" validate:"notblank"`
	ConsumerSecret string `yaml:"consumer_secret" json:"-" validate:"notblank"`
	ZoneID         string `yaml:"zone_id" json:"zone_id" validate:"notblank"`
}

type maxCDNEnv struct {
	Alias          string `envconfig:"MAXCDN_ALIAS"`
	ConsumerKey    string `envconfig:"MAXCDN_CONSUMER_KEY"`
	ConsumerSecret string `envconfig:"MAXCDN_CONSUMER_SECRET"`
}

// ApplyEnvDefaults は空の認証情報を環境変数で補完する
func (c *MaxCDN) ApplyEnvDefaults() error {
	var env maxCDNEnv
	if err := envconfig.Process("", &env); err != nil {
		return err
	}
	fillBlank(&c.Alias, env.Alias)
	fillBlank(&c.ConsumerKey, env.ConsumerKey)
	fillBlank(&c.ConsumerSecret, env.ConsumerSecret)
	return nil
}

// Rackspace はRackspaceの設定
type Rackspace struct {
	Username          string `yaml:"username" json:"username" validate:"notblank"`
	APIKey            string `yaml:"api_key" json:"-" validate:"notblank"`
	Region            string `yaml:"region" json:"region" validate:"notblank"`
	Container         string `yaml:"container" json:"container" validate:"notblank"`
	NotificationEmail string `yaml:"notification_email" json:"notification_email,omitempty"`
}

type rackspaceEnv struct {
	Username string `envconfig:"RACKSPACE_USERNAME"`
	APIKey   string `envconfig:"RACKSPACE_API_KEY"`
}

// ApplyEnvDefaults は空の認証情報を環境変数で補完する
func (c *Rackspace) ApplyEnvDefaults() error {
	var env rackspaceEnv
	if err := envconfig.Process("", &env); err != nil {
		return err
	}
	fillBlank(&c.Username, env.Username)
	fillBlank(&c.APIKey, env.APIKey)
	return nil
}

// Clone は設定のディープコピーを返す。実行中に元の設定を書き換えないために使う
func Clone[T any](src *T) (*T, error) {
	dst := new(T)
	if src == nil {
		return dst, nil
	}
	if err := copier.CopyWithOption(dst, src, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("設定のコピーに失敗: %w", err)
	}
	return dst, nil
}

// String は機密情報を除いた設定をJSONで返す
func (config Config) String() string {
	b, _ := json.Marshal(config)
	return string(b)
}

func fillBlank(dst *string, fallback string) {
	if isBlank(*dst) {
		*dst = fallback
	}
}
