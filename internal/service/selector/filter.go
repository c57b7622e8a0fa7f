package selector

import (
	"fmt"
	"regexp"

	"github.com/gobwas/glob"
)

// Filter はビルド成果物の相対パス（先頭スラッシュなし）に対する選択条件
type Filter interface {
	Match(path string) bool
	// MatchesEverything は全ファイルに一致する条件かどうかを返す
	MatchesEverything() bool
	String() string
}

// RegexFilter は正規表現による条件。部分一致で判定する
type RegexFilter struct {
	re *regexp.Regexp
}

// NewRegexFilter は正規表現の条件を作成する
func NewRegexFilter(expr string) (*RegexFilter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("フィルタ %q の解析に失敗: %w", expr, err)
	}
	return &RegexFilter{re: re}, nil
}

func (f *RegexFilter) Match(path string) bool {
	return f.re.MatchString(path)
}

func (f *RegexFilter) MatchesEverything() bool {
	src := f.re.String()
	return src == ".*" || src == ".+"
}

func (f *RegexFilter) String() string {
	return f.re.String()
}

// GlobFilter はglobパターンによる条件。区切り文字は "/"
type GlobFilter struct {
	pattern string
	g       glob.Glob
}

// NewGlobFilter はglobの条件を作成する
func NewGlobFilter(pattern string) (*GlobFilter, error) {
	g, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("globパターン %q の解析に失敗: %w", pattern, err)
	}
	return &GlobFilter{pattern: pattern, g: g}, nil
}

func (f *GlobFilter) Match(path string) bool {
	return f.g.Match(path)
}

func (f *GlobFilter) MatchesEverything() bool {
	return f.pattern == "**"
}

func (f *GlobFilter) String() string {
	return f.pattern
}

// NewFilter は設定からFilterを作成する。globが指定されていればそちらを優先する
func NewFilter(expr, pattern string) (Filter, error) {
	if pattern != "" {
		return NewGlobFilter(pattern)
	}
	return NewRegexFilter(expr)
}
