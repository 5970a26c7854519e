package extract

import "PathScope/internal/domain/model"

// Reporter は進捗（0〜100 の割合とメッセージ）を受け取ります
type Reporter interface {
	Report(percent int, message string)
}

// ErrorReporter は処理全体を中断するエラーを受け取ります
type ErrorReporter interface {
	ReportError(err error)
}

type nopReporter struct{}

func (nopReporter) Report(int, string) {}
func (nopReporter) ReportError(error)  {}

// Recorder は受け取った進捗とエラーを順に保持します
type Recorder struct {
	Events []model.ProgressEvent
	Errors []error
}

// Report は進捗を記録します
func (r *Recorder) Report(percent int, message string) {
	r.Events = append(r.Events, model.ProgressEvent{Percent: percent, Message: message})
}

// ReportError はエラーを記録します
func (r *Recorder) ReportError(err error) {
	r.Errors = append(r.Errors, err)
}

// Percent は floor(current/total*100) を返します。total が0以下なら0です。
func Percent(current, total int) int {
	if total <= 0 {
		return 0
	}
	p := current * 100 / total
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}
