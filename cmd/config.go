package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cdntk/internal/service/cdn"
	"cdntk/internal/service/common"
)

var showJSON bool

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "設定ファイル操作コマンド",
}

// configExampleCmd represents the example command
var configExampleCmd = &cobra.Command{
	Use:   "example",
	Short: "設定ファイルの雛形を表示するコマンド",
	Long: `全CDNの設定例を含む設定ファイルの雛形を表示します。

【使い方】
  ` + AppName + ` config example > cdn.yml`,
	Args: cobra.NoArgs,
	Run: func(cmdCobra *cobra.Command, args []string) {
		fmt.Print(exampleConfiguration())
	},
}

// configShowCmd represents the show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "読み込んだ設定を表示するコマンド（認証情報は除く）",
	Args:  cobra.NoArgs,
	RunE: func(cmdCobra *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		if showJSON {
			fmt.Println(cfg.String())
			return nil
		}

		fmt.Printf("%s 設定ファイル: %s\n", common.SearchIcon, configFile)
		settings := [][]string{
			{"filter", cfg.Filter},
			{"glob", cfg.Glob},
			{"build_dir", cfg.BuildDir},
			{"source", cfg.Source},
			{"concurrency", strconv.Itoa(cfg.Concurrency)},
			{"aws_region", cfg.AWSRegion},
			{"aws_profile", cfg.AWSProfile},
		}
		common.PrintTable(os.Stdout, "共通設定", []common.TableColumn{{Header: "キー"}, {Header: "値"}}, settings)

		configured := map[cdn.ProviderKey]bool{
			cdn.CloudFlare: cfg.CloudFlare != nil,
			cdn.CloudFront: cfg.CloudFront != nil,
			cdn.Fastly:     cfg.Fastly != nil,
			cdn.MaxCDN:     cfg.MaxCDN != nil,
			cdn.Rackspace:  cfg.Rackspace != nil,
		}
		providers := make([][]string, 0, len(cdn.Order))
		for i, key := range cdn.Order {
			state := "-"
			if configured[key] {
				state = common.SuccessIcon + " 設定済み"
			}
			providers = append(providers, []string{strconv.Itoa(i + 1), string(key), state})
		}
		common.PrintTable(os.Stdout, "CDN（実行順）", []common.TableColumn{{Header: "順序"}, {Header: "CDN", Width: 10}, {Header: "状態"}}, providers)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(ConfigCmd)
	ConfigCmd.AddCommand(configExampleCmd)
	ConfigCmd.AddCommand(configShowCmd)
	configShowCmd.Flags().BoolVar(&showJSON, "json", false, "JSON形式で表示する")
}
