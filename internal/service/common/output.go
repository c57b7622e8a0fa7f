package common

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

const headerWidth = 12

// ConsoleReporter はオペレーター向けのステータス行を出力する。
// 複数のゴルーチンから同時に呼び出してよい
type ConsoleReporter struct {
	mu     sync.Mutex
	out    io.Writer
	header string

	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// NewConsoleReporter はConsoleReporterを作成する
func NewConsoleReporter(out io.Writer, header string) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		header: runewidth.FillLeft(header, headerWidth),
		green:  color.New(color.FgGreen).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		red:    color.New(color.FgRed).SprintFunc(),
	}
}

func (r *ConsoleReporter) Info(label, msg string) {
	r.println(label, msg)
}

func (r *ConsoleReporter) Warn(label, msg string) {
	r.println(label, r.yellow(WarningIcon+" "+msg))
}

func (r *ConsoleReporter) Error(label, msg string) {
	r.println(label, r.red(ErrorIcon+" "+msg))
}

// Unit は処理単位（ファイル・バッチ・ゾーン）の結果を1行で出力する
func (r *ConsoleReporter) Unit(label, unit string, err error) {
	if err != nil {
		r.println(label, fmt.Sprintf("%s %s", unit, r.red(ErrorIcon+" "+err.Error())))
		return
	}
	r.println(label, fmt.Sprintf("%s %s", unit, SuccessIcon))
}

func (r *ConsoleReporter) println(label, msg string) {
	var b strings.Builder
	b.WriteString(r.green(r.header))
	b.WriteString("  ")
	if label != "" {
		b.WriteString(r.yellow(label))
		b.WriteString(" ")
	}
	b.WriteString(msg)

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, b.String())
}

// ConfirmEnter はメッセージを表示してENTERの入力を待つ確認関数を返す。
// 入力が閉じられた場合は中断として扱う
func ConfirmEnter(in io.Reader, out io.Writer) func(string) bool {
	reader := bufio.NewReader(in)
	return func(msg string) bool {
		fmt.Fprintf(out, "%s %s ", WarningIcon, msg)
		_, err := reader.ReadString('\n')
		fmt.Fprintln(out)
		return err == nil
	}
}
