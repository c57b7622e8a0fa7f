package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"cdntk/internal/config"
)

const AppName = "cdntk"

var configFile string
var logLevel string
var noColor bool

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   AppName,
	Short: "ビルド後にCDNのキャッシュを無効化するツール",
	Long: `静的サイトのビルド後に、変更されたファイルのキャッシュを複数のCDNで無効化します。
対応しているCDN: CloudFlare, CloudFront, Fastly, MaxCDN, Rackspace

設定ファイル（デフォルト: ` + config.DefaultConfigFile + `）に記述されたCDNだけが実行されます。
設定ファイルの雛形は ` + AppName + ` config example で表示できます。`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := RootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "設定ファイルのパス（デフォルト: "+config.DefaultConfigFile+"、環境変数 CDNTK_CONFIG）")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "ログレベル (debug, info, warn, error)")
	RootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "色付けを無効にする")

	// コマンド実行前に共通で設定とログを初期化する
	RootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" {
			return nil
		}
		return setupEnvironment()
	}
}

// setupEnvironment はフラグと環境変数から設定ファイルのパスとログレベルを決定する
func setupEnvironment() error {
	settings, err := config.GetSettings()
	if err != nil {
		return fmt.Errorf("❌ 環境変数の読み込みに失敗: %w", err)
	}
	if configFile == "" {
		configFile = settings.ConfigFile
	}
	if logLevel == "" {
		logLevel = settings.LogLevel
	}

	if noColor {
		color.NoColor = true
	}

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("❌ ログレベル '%s' が不正です: %w", logLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor})
	return nil
}
