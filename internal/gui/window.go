// Package gui はGUIを提供します
package gui

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"PathScope/internal/app"
	"PathScope/internal/config"
	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
)

// Default window size constants
const (
	DefaultWindowWidth  = 600
	DefaultWindowHeight = 400
)

const (
	idleMessage  = "待機中..."
	readyMessage = "準備完了"
)

// Window はAPIパス抽出ツールのメインウィンドウです
type Window struct {
	win       fyne.Window
	cfg       *config.Config
	logger    *logging.JSONLogger
	validator filesystem.TargetValidator

	target  model.Target
	running atomic.Bool
	cancel  context.CancelFunc

	fileButton     *widget.Button
	dirButton      *widget.Button
	extractButton  *widget.Button
	progressBar    *widget.ProgressBar
	progressLabel  *widget.Label
	percentLabel   *widget.Label
	statusLabel    *widget.Label
	fileCountLabel *widget.Label
	apiCountLabel  *widget.Label
}

// NewWindow はウィンドウとウィジェットを作成します
func NewWindow(a fyne.App, cfg *config.Config, logger *logging.JSONLogger) *Window {
	w := &Window{
		win:       a.NewWindow("APIパス抽出ツール"),
		cfg:       cfg,
		logger:    logger,
		validator: filesystem.NewScanner(logger),
	}
	w.win.Resize(fyne.NewSize(DefaultWindowWidth, DefaultWindowHeight))
	w.win.SetFixedSize(true)
	w.win.SetContent(w.build())
	w.win.SetOnClosed(func() {
		if w.cancel != nil {
			w.cancel()
		}
	})
	return w
}

func (w *Window) build() fyne.CanvasObject {
	title := widget.NewLabelWithStyle("APIパス抽出ツール", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	desc := widget.NewLabelWithStyle("ファイルまたはディレクトリを選択し、'/' で始まるAPIパスをすべて抽出します", fyne.TextAlignCenter, fyne.TextStyle{})

	w.fileButton = widget.NewButton("ファイルを選択", w.selectFile)
	w.dirButton = widget.NewButton("ディレクトリを選択", w.selectDirectory)

	w.extractButton = widget.NewButton("APIパスを抽出", w.extract)
	w.extractButton.Importance = widget.HighImportance
	w.extractButton.Disable()

	w.progressLabel = widget.NewLabel(idleMessage)
	w.progressBar = widget.NewProgressBar()
	w.percentLabel = widget.NewLabelWithStyle("0%", fyne.TextAlignTrailing, fyne.TextStyle{})

	w.statusLabel = widget.NewLabel("状態: ファイルまたはディレクトリを選択してください")
	w.fileCountLabel = widget.NewLabel("")
	w.apiCountLabel = widget.NewLabel("")

	return container.NewVBox(
		title,
		desc,
		container.NewCenter(container.NewHBox(w.fileButton, w.dirButton)),
		container.NewCenter(w.extractButton),
		w.progressLabel,
		w.progressBar,
		w.percentLabel,
		w.statusLabel,
		w.fileCountLabel,
		w.apiCountLabel,
	)
}

// ShowAndRun はウィンドウを表示してイベントループを開始します
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// Report は進捗をプログレスバーとラベルに反映します
func (w *Window) Report(percent int, message string) {
	w.progressBar.SetValue(float64(percent) / 100)
	w.percentLabel.SetText(fmt.Sprintf("%d%%", percent))
	w.progressLabel.SetText(message)
}

// ReportError はエラーダイアログを表示します
func (w *Window) ReportError(err error) {
	dialog.ShowError(fmt.Errorf("抽出処理中にエラーが発生しました: %w", err), w.win)
}

func (w *Window) selectFile() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("ファイル選択エラー: %w", err), w.win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		w.setTarget(model.Target{Path: rc.URI().Path(), IsFile: true})
	}, w.win)
}

func (w *Window) selectDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			dialog.ShowError(fmt.Errorf("フォルダ選択エラー: %w", err), w.win)
			return
		}
		if uri == nil {
			return
		}
		w.setTarget(model.Target{Path: uri.Path()})
	}, w.win)
}

// setTarget は選択された対象を検証し、状態表示と処理予定ファイル数を更新します
func (w *Window) setTarget(target model.Target) {
	if w.running.Load() {
		return
	}
	if err := w.validator.ValidateTarget(target); err != nil {
		w.logger.Log(logging.LevelWarn, "選択された対象が無効です", err)
		dialog.ShowError(err, w.win)
		return
	}

	count := 1
	if !target.IsFile {
		n, err := filesystem.NewScanner(w.logger, filesystem.WithExclude(w.cfg.Exclude...)).
			CountFiles(context.Background(), target.Path)
		if err != nil {
			dialog.ShowError(err, w.win)
			return
		}
		count = n
	}

	w.target = target
	w.statusLabel.SetText("状態: " + SelectionText(target))
	w.fileCountLabel.SetText(fmt.Sprintf("処理予定: %d 個のファイル", count))
	w.apiCountLabel.SetText("")
	w.extractButton.Enable()
}

// SelectionText は選択された対象の表示用テキストを返します
func SelectionText(target model.Target) string {
	if target.IsZero() {
		return "ファイルまたはディレクトリを選択してください"
	}
	if target.IsFile {
		return "選択されたファイル: " + filepath.Base(target.Path)
	}
	return "選択されたディレクトリ: " + filepath.Base(target.Path)
}

func (w *Window) extract() {
	if !w.running.CompareAndSwap(false, true) {
		return
	}

	target := w.target
	runLogger, _ := app.NewRunLogger(w.logger)
	a, err := app.New(w.cfg, runLogger, w, w)
	if err != nil {
		w.running.Store(false)
		w.ReportError(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.setSelecting(false)

	go func() {
		defer cancel()
		// running は画面の更新がすべて終わってから解除する
		defer w.running.Store(false)
		defer w.setSelecting(true)

		summary, err := a.Service.Run(ctx, target)
		if err != nil {
			return
		}

		w.apiCountLabel.SetText(fmt.Sprintf("抽出件数: %d 件のAPIパス", summary.PathCount))
		dialog.ShowInformation("完了",
			fmt.Sprintf("%d 件のAPIパスを抽出しました\n保存先: %s", summary.PathCount, summary.OutputPath), w.win)
		w.Report(0, readyMessage)
	}()
}

// setSelecting は対象選択ボタンと抽出ボタンの有効・無効をまとめて切り替えます
func (w *Window) setSelecting(enabled bool) {
	for _, b := range []*widget.Button{w.fileButton, w.dirButton, w.extractButton} {
		if enabled {
			b.Enable()
		} else {
			b.Disable()
		}
	}
}
