// Package selector は無効化対象のファイル一覧を作成する
package selector

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

const indexFile = "index.html"

// Select はSourceのファイルのうちFilterに一致するものを正規化して返す。
// 一致するファイルがない場合は空のスライスを返す
func Select(ctx context.Context, src Source, filter Filter) ([]string, error) {
	files, err := src.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]string, 0, len(files))
	for _, f := range files {
		if filter.Match(f) {
			matched = append(matched, f)
		}
	}
	log.Debug().Str("source", src.String()).Int("listed", len(files)).Int("matched", len(matched)).Msg("files selected")

	return Normalize(matched), nil
}

// Normalize はパスを正規化する。
// index.html で終わるパスの直後にはディレクトリの2つの表記（末尾スラッシュあり・なし）を追加し、
// すべてのパスの先頭を "/" にする
func Normalize(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, withLeadingSlash(p))

		dir, ok := indexDir(p)
		if !ok {
			continue
		}
		out = append(out, withLeadingSlash(dir))
		if trimmed := strings.TrimSuffix(dir, "/"); trimmed != "" {
			out = append(out, withLeadingSlash(trimmed))
		}
	}
	return out
}

// indexDir は最後のセグメントが index.html の場合にそれを除いたパスを返す
func indexDir(p string) (string, bool) {
	if p != indexFile && !strings.HasSuffix(p, "/"+indexFile) {
		return "", false
	}
	return strings.TrimSuffix(p, indexFile), true
}

func withLeadingSlash(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
