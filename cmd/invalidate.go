package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"cdntk/internal"
	"cdntk/internal/config"
	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

var (
	filterExpr  string
	globPattern string
	buildDir    string
	source      string
	assumeYes   bool
	concurrency int
)

// invalidateCmd represents the invalidate command
var invalidateCmd = &cobra.Command{
	Use:   "invalidate [files...]",
	Short: "設定済みの全CDNでキャッシュを無効化するコマンド",
	Long: `ビルドディレクトリのファイルを走査し、フィルタに一致するファイルを設定済みの全CDNで無効化します。
ファイルを引数で指定した場合はディレクトリを走査せず、指定したファイルだけを無効化します。
CDNは CloudFlare, CloudFront, Fastly, MaxCDN, Rackspace の順に実行されます。

【使い方】
  ` + AppName + ` invalidate                          # ビルド後に実行（設定ファイルのfilterを使用）
  ` + AppName + ` invalidate -f '\.html$'             # HTMLファイルだけを無効化
  ` + AppName + ` invalidate -g 'assets/**'           # globで指定
  ` + AppName + ` invalidate -s s3://my-bucket/site   # S3のオブジェクト一覧から選択
  ` + AppName + ` invalidate /index.html /about/      # ファイルを直接指定

【例】
  ` + AppName + ` invalidate -c cdn.yml -n 4 -y
  → 4並列で無効化し、Rackspaceの上限超過時も確認せずに続行します`,
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyInvalidateFlags(cmdCobra, cfg)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		opts := internal.InvalidateOptions{
			Config:   cfg,
			Files:    args,
			Reporter: common.NewConsoleReporter(os.Stdout, AppName),
			Progress: os.Stderr,
		}
		if !assumeYes {
			opts.Confirm = common.ConfirmEnter(os.Stdin, os.Stdout)
		}

		report, err := internal.Invalidate(ctx, opts)
		if errors.Is(err, cdn.ErrNoProviderConfigured) {
			fmt.Fprintf(os.Stderr, "%s %v\n\n設定例:\n\n%s", common.ErrorIcon, err, exampleConfiguration())
			return err
		}
		if err != nil {
			return fmt.Errorf(common.InvalidateErrorFormat, common.ErrorIcon, "キャッシュ", err)
		}

		if len(report.Files) == 0 {
			fmt.Printf("%s 無効化するファイルがありませんでした\n", common.InfoIcon)
			return nil
		}

		printSummary(os.Stdout, report)

		if report.AllFatal() {
			return fmt.Errorf("%s 全てのCDNで無効化に失敗しました", common.ErrorIcon)
		}
		if report.Failed() {
			fmt.Printf("\n%s 一部のCDNまたはファイルで無効化に失敗しました\n", common.WarningIcon)
			return nil
		}
		fmt.Printf("\n"+common.InvalidateSuccessFormat+"\n", common.PartyIcon, fmt.Sprintf("%d件のファイル", len(report.Files)))
		return nil
	},
}

// applyInvalidateFlags は明示的に指定されたフラグで設定ファイルの値を上書きする
func applyInvalidateFlags(cmdCobra *cobra.Command, cfg *config.Config) {
	flags := cmdCobra.Flags()
	if flags.Changed("filter") {
		cfg.Filter = filterExpr
		// 設定ファイルのglobは明示的な--filterより優先しない
		if !flags.Changed("glob") {
			cfg.Glob = ""
		}
	}
	if flags.Changed("glob") {
		cfg.Glob = globPattern
	}
	if flags.Changed("build-dir") {
		cfg.BuildDir = buildDir
	}
	if flags.Changed("source") {
		cfg.Source = source
	}
	if flags.Changed("concurrency") {
		cfg.Concurrency = max(concurrency, 1)
	}
}

func init() {
	RootCmd.AddCommand(invalidateCmd)
	invalidateCmd.Flags().StringVarP(&filterExpr, "filter", "f", config.DefaultFilter, "無効化するファイルの正規表現")
	invalidateCmd.Flags().StringVarP(&globPattern, "glob", "g", "", "無効化するファイルのglob（filterより優先）")
	invalidateCmd.Flags().StringVarP(&buildDir, "build-dir", "b", config.DefaultBuildDir, "ビルド成果物のディレクトリ")
	invalidateCmd.Flags().StringVarP(&source, "source", "s", "", "ファイル一覧の取得元 (s3://bucket/prefix)")
	invalidateCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "確認をせずに続行する")
	invalidateCmd.Flags().IntVarP(&concurrency, "concurrency", "n", config.DefaultConcurrency, "ファイル単位の処理の並列数")
}
