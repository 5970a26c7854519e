// Package ui はユーザーインターフェース機能を提供します
package ui

import (
	"errors"
	"fmt"

	"github.com/sqweek/dialog"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
)

// ErrCancelled はユーザーが選択をキャンセルしたことを表します
var ErrCancelled = errors.New("選択がキャンセルされました")

// TargetSelector はネイティブダイアログで抽出対象を選択します
type TargetSelector struct {
	// validator は選択されたパスの検証を行うインターフェースです
	validator filesystem.TargetValidator

	loadFile  func(title string) (string, error)
	browseDir func(title string) (string, error)
}

// NewTargetSelector は新しい TargetSelector インスタンスを作成します
func NewTargetSelector(validator filesystem.TargetValidator) *TargetSelector {
	return &TargetSelector{
		validator: validator,
		loadFile: func(title string) (string, error) {
			return dialog.File().
				Title(title).
				Filter("すべてのファイル", "*").
				Filter("テキストファイル", "txt", "json", "js", "ts", "java", "py").
				Load()
		},
		browseDir: func(title string) (string, error) {
			return dialog.Directory().Title(title).Browse()
		},
	}
}

func wrapDialogErr(err error) error {
	if errors.Is(err, dialog.ErrCancelled) {
		return ErrCancelled
	}
	return fmt.Errorf("選択中にエラーが発生しました: %w", err)
}

// SelectFile はダイアログを表示して単一ファイルを選択します
func (s *TargetSelector) SelectFile(title string) (model.Target, error) {
	path, err := s.loadFile(title)
	if err != nil {
		return model.Target{}, wrapDialogErr(err)
	}

	if err := s.validator.ValidateFilePath(path); err != nil {
		return model.Target{}, fmt.Errorf("無効なファイルが選択されました: %w", err)
	}

	return model.Target{Path: path, IsFile: true}, nil
}

// SelectDirectory はダイアログを表示してディレクトリを選択します
func (s *TargetSelector) SelectDirectory(title string) (model.Target, error) {
	path, err := s.browseDir(title)
	if err != nil {
		return model.Target{}, wrapDialogErr(err)
	}

	if err := s.validator.ValidateDirectoryPath(path); err != nil {
		return model.Target{}, fmt.Errorf("無効なディレクトリが選択されました: %w", err)
	}

	return model.Target{Path: path}, nil
}

// ShowError はエラーダイアログを表示します
func ShowError(err error) {
	dialog.Message("%v", err).Title("エラー").Error()
}

// ShowInfo は情報ダイアログを表示します
func ShowInfo(title, message string) {
	dialog.Message("%s", message).Title(title).Info()
}
