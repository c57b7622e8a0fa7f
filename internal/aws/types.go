package aws

import "github.com/aws/aws-sdk-go-v2/aws"

// Context AwsContext は認証情報を保持
type Context struct {
	Profile         string
	Region          string
	AccessKeyID     string // 指定された場合はプロファイルより優先
	SecretAccessKey string
	config          *aws.Config // AWS設定のキャッシュ（非公開）
}
