package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/cloudflare"
	"cdntk/internal/service/cloudfront"
	"cdntk/internal/service/common"
	"cdntk/internal/service/fastly"
	"cdntk/internal/service/maxcdn"
	"cdntk/internal/service/rackspace"
)

// loadConfig は設定ファイルを読み込む。ファイルがない場合はデフォルト値のみのConfigを返す
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "%s 設定ファイル '%s' が見つかりません\n", common.WarningIcon, configFile)
		return config.Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s %w", common.ErrorIcon, err)
	}
	return cfg, nil
}

// exampleConfiguration は共通設定と全プロバイダーの設定例を連結して返す
func exampleConfiguration() string {
	parts := []string{
		config.ExampleHeader,
		cloudflare.ExampleConfiguration(),
		cloudfront.ExampleConfiguration(),
		fastly.ExampleConfiguration(),
		maxcdn.ExampleConfiguration(),
		rackspace.ExampleConfiguration(),
	}
	return strings.Join(parts, "\n")
}

// printSummary はプロバイダーごとの成功数・失敗数をテーブルで表示する
func printSummary(w io.Writer, report *cdn.Report) {
	columns := []common.TableColumn{
		{Header: "CDN"},
		{Header: "成功", Width: 4},
		{Header: "失敗", Width: 4},
		{Header: "状態"},
	}

	data := make([][]string, 0, len(report.Results))
	for _, res := range report.Results {
		succeeded, failed := res.Counts()
		status := common.SuccessIcon
		switch {
		case res.Err != nil:
			status = common.ErrorIcon + " " + res.Err.Error()
		case failed > 0:
			status = common.WarningIcon + " 一部失敗"
		}
		data = append(data, []string{string(res.Provider), strconv.Itoa(succeeded), strconv.Itoa(failed), status})
	}

	common.PrintTable(w, common.InfoIcon+" 実行結果", columns, data)
}
