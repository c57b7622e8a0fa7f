// Package cdntest はプロバイダーのテスト用ヘルパー
package cdntest

import (
	"strings"
	"sync"
)

// Reporter は出力内容を "種別|ラベル|メッセージ" の形式で記録するcdn.Reporter
type Reporter struct {
	mu    sync.Mutex
	lines []string
}

func (r *Reporter) Info(label, msg string)  { r.add("info|" + label + "|" + msg) }
func (r *Reporter) Warn(label, msg string)  { r.add("warn|" + label + "|" + msg) }
func (r *Reporter) Error(label, msg string) { r.add("error|" + label + "|" + msg) }

func (r *Reporter) Unit(label, unit string, err error) {
	if err != nil {
		r.add("unit|" + label + "|" + unit + "|" + err.Error())
		return
	}
	r.add("unit|" + label + "|" + unit)
}

// Lines は記録された行を返す
func (r *Reporter) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Contains はいずれかの行がsubを含むかどうかを返す
func (r *Reporter) Contains(sub string) bool {
	for _, l := range r.Lines() {
		if strings.Contains(l, sub) {
			return true
		}
	}
	return false
}

func (r *Reporter) add(line string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
}
