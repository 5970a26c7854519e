// Package cli は端末向けの進捗表示を提供します
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"PathScope/internal/domain/model"
)

const defaultBarWidth = 30

// ConsoleReporter は進捗とエラーを端末に表示します。
// 端末に接続されている場合は同じ行を書き換えてプログレスバーを描画します。
type ConsoleReporter struct {
	out     io.Writer
	tty     bool
	width   int
	drawn   bool
	bar     *color.Color
	percent *color.Color
	fail    *color.Color
	success *color.Color
	label   *color.Color
}

// NewConsoleReporter は新しい ConsoleReporter インスタンスを作成します
func NewConsoleReporter(out io.Writer, noColor bool) *ConsoleReporter {
	r := &ConsoleReporter{
		out:     out,
		tty:     IsTerminal(out),
		width:   defaultBarWidth,
		bar:     color.New(color.FgCyan),
		percent: color.New(color.FgRed),
		fail:    color.New(color.FgRed, color.Bold),
		success: color.New(color.FgGreen),
		label:   color.New(color.FgYellow),
	}
	if noColor || !r.tty {
		for _, c := range []*color.Color{r.bar, r.percent, r.fail, r.success, r.label} {
			c.DisableColor()
		}
	}
	return r
}

// IsTerminal は w が端末かどうかを返します
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// RenderBar は "[=====     ]" 形式のバーを返します
func RenderBar(percent, width int) string {
	if width < 1 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}

// Report は進捗を表示します
func (r *ConsoleReporter) Report(percent int, message string) {
	line := fmt.Sprintf("%s %s %s",
		r.bar.Sprint(RenderBar(percent, r.width)),
		r.percent.Sprintf("%3d%%", percent),
		message)

	if r.tty {
		fmt.Fprintf(r.out, "\r\033[K%s", line)
		r.drawn = true
		return
	}
	fmt.Fprintln(r.out, line)
}

// ReportError はエラーを表示します
func (r *ConsoleReporter) ReportError(err error) {
	r.endLine()
	fmt.Fprintf(r.out, "%s %v\n", r.fail.Sprint("エラー:"), err)
}

// PrintSummary は抽出結果の集計を表示します
func (r *ConsoleReporter) PrintSummary(s *model.Summary) {
	r.endLine()
	fmt.Fprintln(r.out, r.success.Sprintf("成功: %d 件のAPIパスを抽出しました", s.PathCount))
	fmt.Fprintf(r.out, "%s %s\n", r.label.Sprint("出力先:"), s.OutputPath)
	fmt.Fprintf(r.out, "%s %d (失敗 %d, スキップ %d)\n", r.label.Sprint("処理ファイル数:"), s.FilesScanned, s.FilesFailed, s.FilesSkipped)
	fmt.Fprintf(r.out, "%s %s\n", r.label.Sprint("処理時間:"), s.Duration.Round(time.Millisecond))
	if len(s.FailedFiles) > 0 {
		fmt.Fprintln(r.out, r.fail.Sprint("読み込めなかったファイル:"))
		for _, name := range s.FailedFiles {
			fmt.Fprintf(r.out, "  - %s\n", name)
		}
	}
}

// PrintSelection は選択された対象と処理予定のファイル数を表示します
func (r *ConsoleReporter) PrintSelection(t model.Target, fileCount int) {
	kind := "ディレクトリ"
	if t.IsFile {
		kind = "ファイル"
	}
	fmt.Fprintf(r.out, "%s %s\n", r.label.Sprintf("選択された%s:", kind), t.Path)
	fmt.Fprintf(r.out, "%s %d 個のファイル\n", r.label.Sprint("処理予定:"), fileCount)
}

func (r *ConsoleReporter) endLine() {
	if r.drawn {
		fmt.Fprintln(r.out)
		r.drawn = false
	}
}
