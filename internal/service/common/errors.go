package common

// エラーメッセージの絵文字定数
const (
	ErrorIcon   = "❌"
	SuccessIcon = "✅"
	WarningIcon = "⚠️"
	SearchIcon  = "🔍"
	InfoIcon    = "📋"
	ProcessIcon = "🔄"
	PartyIcon   = "🎉"
)

// エラーメッセージフォーマット定数
const (
	// 無効化エラー
	InvalidateErrorFormat = "%s %s の無効化に失敗: %w"
	ResolveErrorFormat    = "%s %s の解決に失敗: %w"

	// 取得エラー
	GetErrorFormat = "%s %s の取得に失敗: %w"

	// 成功メッセージ
	InvalidateSuccessFormat = "%s %s を無効化しました"

	// 処理中メッセージ
	ProcessingFormat = "%s %s を処理中..."
	WaitingFormat    = "%s %s の完了を待っています..."
)
