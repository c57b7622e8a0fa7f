package cloudfront

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// describeAPIError はAWSのAPIエラーをコードとメッセージが分かる形にする
func describeAPIError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%s: %s: %w", apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}
	return err
}
