package cloudfront

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

// resolveDistributionID はdistribution_idが空の場合にstack_nameのスタックから解決する
func (p *Provider) resolveDistributionID(ctx context.Context, api StackAPI, cfg *config.CloudFront) (string, error) {
	if cfg.DistributionID != "" {
		return cfg.DistributionID, nil
	}

	distributions, err := distributionsFromStack(ctx, api, cfg.StackName)
	if err != nil {
		return "", fmt.Errorf(common.ResolveErrorFormat, common.ErrorIcon, "ディストリビューション", err)
	}

	switch len(distributions) {
	case 0:
		return "", fmt.Errorf("スタック '%s' にCloudFrontディストリビューションが見つかりませんでした", cfg.StackName)
	case 1:
		p.Reporter.Info(string(cdn.CloudFront), fmt.Sprintf("%s スタック '%s' からディストリビューション '%s' を検出しました", common.SearchIcon, cfg.StackName, distributions[0]))
		return distributions[0], nil
	default:
		return "", cdn.InvalidKey(cdn.CloudFront, "stack_name",
			fmt.Sprintf("複数のディストリビューションが見つかりました (%s)。distribution_id を指定してください", strings.Join(distributions, ", ")))
	}
}

// distributionsFromStack はCloudFormationスタックからすべてのCloudFrontディストリビューションIDを取得します
func distributionsFromStack(ctx context.Context, api StackAPI, stackName string) ([]string, error) {
	resp, err := api.DescribeStackResources(ctx, &cloudformation.DescribeStackResourcesInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("CloudFormationスタックのリソース取得に失敗: %w", describeAPIError(err))
	}

	var ids []string
	for _, resource := range resp.StackResources {
		if aws.ToString(resource.ResourceType) == distributionResourceType && resource.PhysicalResourceId != nil {
			ids = append(ids, *resource.PhysicalResourceId)
		}
	}
	return ids, nil
}
