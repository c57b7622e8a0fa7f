package cloudfront

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"

	"cdntk/internal/config"
)

const (
	// InvalidationLimit は1回の無効化リクエストに含められるパス数の上限
	InvalidationLimit = 1000

	// DefaultPollInterval は無効化の完了を確認する間隔
	DefaultPollInterval = 10 * time.Second

	statusInProgress = "InProgress"
	statusCompleted  = "Completed"

	distributionResourceType = "AWS::CloudFront::Distribution"
)

// API はこのパッケージが使うCloudFrontの操作
type API interface {
	CreateInvalidation(ctx context.Context, params *cloudfront.CreateInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.CreateInvalidationOutput, error)
	GetInvalidation(ctx context.Context, params *cloudfront.GetInvalidationInput, optFns ...func(*cloudfront.Options)) (*cloudfront.GetInvalidationOutput, error)
}

// StackAPI はstack_nameからディストリビューションを解決するためのCloudFormationの操作
type StackAPI interface {
	DescribeStackResources(ctx context.Context, params *cloudformation.DescribeStackResourcesInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackResourcesOutput, error)
}

// ClientFactory は設定からAWSクライアントを作成する
type ClientFactory func(ctx context.Context, cfg *config.CloudFront) (API, StackAPI, error)
