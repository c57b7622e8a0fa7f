// Package cloudfront はAWS CloudFrontのキャッシュ無効化を行う
package cloudfront

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront"
	"github.com/aws/aws-sdk-go-v2/service/cloudfront/types"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	awsclient "cdntk/internal/aws"
	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

// Provider はCloudFrontのプロバイダー
type Provider struct {
	Config   *config.CloudFront
	Reporter cdn.Reporter

	NewClients   ClientFactory
	PollInterval time.Duration
	Progress     io.Writer // 待機中の表示先。nilの場合は表示しない
}

// NewProvider はAWS SDKのクライアントを使うProviderを作成する
func NewProvider(cfg *config.CloudFront, reporter cdn.Reporter) *Provider {
	return &Provider{
		Config:       cfg,
		Reporter:     reporter,
		NewClients:   newAWSClients,
		PollInterval: DefaultPollInterval,
	}
}

func newAWSClients(ctx context.Context, cfg *config.CloudFront) (API, StackAPI, error) {
	clients, err := awsclient.NewAwsClients(ctx, awsclient.Context{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("AWS設定の読み込みに失敗: %w", err)
	}
	return clients.CloudFront(), clients.Cfn(), nil
}

func (p *Provider) Key() cdn.ProviderKey {
	return cdn.CloudFront
}

func (p *Provider) RequiredConfigKeys() []string {
	return []string{"access_key_id", "secret_access_key", "distribution_id"}
}

// ExampleConfiguration は設定ファイルの例を返す
func ExampleConfiguration() string {
	return `cloudfront:
  access_key_id: ""        # 空の場合は環境変数 AWS_ACCESS_KEY_ID
  secret_access_key: ""    # 空の場合は環境変数 AWS_SECRET_ACCESS_KEY
  distribution_id: E1234567890ABC
  # stack_name: my-site    # distribution_id の代わりにCloudFormationスタックから解決
`
}

// Invalidate はファイル一覧を最大1000件ずつのバッチで無効化する。
// バッチが複数ある場合は、最後以外のバッチの完了を待ってから次を送信する
func (p *Provider) Invalidate(ctx context.Context, files []string, _ bool) (cdn.Result, error) {
	cfg, err := config.Clone(p.Config)
	if err != nil {
		return cdn.Result{}, err
	}
	if err := cfg.ApplyEnvDefaults(); err != nil {
		return cdn.Result{}, err
	}
	if key := config.FirstMissingKey(cfg); key != "" {
		return cdn.Result{}, cdn.MissingKey(cdn.CloudFront, key)
	}

	api, stackAPI, err := p.NewClients(ctx, cfg)
	if err != nil {
		return cdn.Result{}, err
	}

	distributionID, err := p.resolveDistributionID(ctx, stackAPI, cfg)
	if err != nil {
		return cdn.Result{}, err
	}

	label := string(cdn.CloudFront)
	batches := Batches(files, InvalidationLimit)
	result := cdn.Result{Provider: cdn.CloudFront}

	if len(batches) == 1 {
		p.Reporter.Info(label, fmt.Sprintf("%d件のファイルを無効化しています...", len(files)))
	} else {
		p.Reporter.Info(label, fmt.Sprintf("%d件のファイルを%dバッチに分けて無効化しています...", len(files), len(batches)))
	}

	for i, batch := range batches {
		unit := fmt.Sprintf("バッチ %d/%d", i+1, len(batches))
		if len(batches) == 1 {
			unit = fmt.Sprintf("%d件", len(batch))
		}

		err := p.invalidateBatch(ctx, api, distributionID, batch, i, len(batches))
		p.Reporter.Unit(label, unit, err)
		result.Outcomes = append(result.Outcomes, cdn.Outcome{Unit: unit, Err: err})
	}

	p.Reporter.Info(label, "すべてのファイルが無効化されるまで10〜15分かかる場合があります")
	p.Reporter.Info(label, "無効化の状況はAWSマネジメントコンソールで確認してください")
	return result, nil
}

func (p *Provider) invalidateBatch(ctx context.Context, api API, distributionID string, paths []string, index, total int) error {
	invalidation, err := createInvalidation(ctx, api, distributionID, paths, index)
	if err != nil {
		return err
	}
	status := aws.ToString(invalidation.Status)
	id := aws.ToString(invalidation.Id)
	log.Debug().Str("distribution_id", distributionID).Str("invalidation_id", id).Str("status", status).Int("paths", len(paths)).Msg("invalidation created")

	if total == 1 {
		if status != statusInProgress {
			return fmt.Errorf("無効化のステータスが %s です（期待値: %s）", status, statusInProgress)
		}
		return nil
	}

	if index == total-1 || status == statusCompleted {
		return nil
	}
	return p.waitForInvalidation(ctx, api, distributionID, id)
}

func createInvalidation(ctx context.Context, api API, distributionID string, paths []string, index int) (*types.Invalidation, error) {
	// CallerReferenceはリクエストごとに一意にする
	callerReference := fmt.Sprintf("cdntk-%d-%d", time.Now().UnixNano(), index+1)

	input := &cloudfront.CreateInvalidationInput{
		DistributionId: aws.String(distributionID),
		InvalidationBatch: &types.InvalidationBatch{
			CallerReference: aws.String(callerReference),
			Paths: &types.Paths{
				Quantity: aws.Int32(int32(len(paths))),
				Items:    paths,
			},
		},
	}

	out, err := api.CreateInvalidation(ctx, input)
	if err != nil {
		return nil, describeAPIError(err)
	}
	if out.Invalidation == nil {
		return nil, errors.New("無効化の結果が空です")
	}
	return out.Invalidation, nil
}

// waitForInvalidation は無効化が完了するまで待機します
func (p *Provider) waitForInvalidation(ctx context.Context, api API, distributionID, invalidationID string) error {
	progress := p.Progress
	if progress == nil {
		progress = io.Discard
	}
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription(fmt.Sprintf(common.WaitingFormat, common.ProcessIcon, invalidationID)),
		progressbar.OptionClearOnFinish(),
	)
	defer func() { _ = bar.Finish() }()

	interval := p.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		out, err := api.GetInvalidation(ctx, &cloudfront.GetInvalidationInput{
			DistributionId: aws.String(distributionID),
			Id:             aws.String(invalidationID),
		})
		if err != nil {
			return fmt.Errorf(common.GetErrorFormat, common.ErrorIcon, "無効化ステータス", describeAPIError(err))
		}

		status := ""
		if out.Invalidation != nil {
			status = aws.ToString(out.Invalidation.Status)
		}
		log.Debug().Str("invalidation_id", invalidationID).Str("status", status).Msg("polling invalidation")
		if status == statusCompleted {
			return nil
		}
		_ = bar.Add(1)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Batches はパスの一覧を順序を保ったまま最大size件ずつに分割する
func Batches(paths []string, size int) [][]string {
	var batches [][]string
	for start := 0; start < len(paths); start += size {
		end := min(start+size, len(paths))
		batches = append(batches, paths[start:end])
	}
	return batches
}
