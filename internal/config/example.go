package config

// ExampleHeader は `cdntk config example` で各プロバイダーの例の前に出力する共通設定の雛形
const ExampleHeader = `# cdntk 設定ファイル
# ${VAR} 形式で環境変数を参照できる

# 無効化するファイルの正規表現（デフォルト: .*）
filter: '\.html$'
# glob を指定した場合は filter より優先される
# glob: '**/*.html'
build_dir: build
# source: s3://my-bucket/site
concurrency: 4
`
