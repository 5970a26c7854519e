// Package report は抽出結果の出力機能を提供します
package report

import (
	"fmt"
	"strings"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filelock"
)

// DefaultOutputFile は出力先が指定されない場合のファイル名です
const DefaultOutputFile = "result.txt"

// Writer はAPIパスをソートして改行区切りで出力します
type Writer struct {
	outputPath string
}

// NewWriter は新しい Writer インスタンスを作成します。
// outputPath が空の場合は作業ディレクトリの result.txt に出力します。
func NewWriter(outputPath string) *Writer {
	if outputPath == "" {
		outputPath = DefaultOutputFile
	}
	return &Writer{outputPath: outputPath}
}

// OutputPath は出力先のパスを返します
func (w *Writer) OutputPath() string {
	return w.outputPath
}

// Format は集合をバイト順にソートし改行で連結します（末尾の改行なし）
func Format(results model.ResultSet) string {
	return strings.Join(results.Sorted(), "\n")
}

// Write は出力ファイルを上書きし、書き込んだ件数を返します
func (w *Writer) Write(results model.ResultSet) (int, error) {
	if err := filelock.LockAndWrite(w.outputPath, []byte(Format(results))); err != nil {
		return 0, fmt.Errorf("出力ファイルへの書き込みに失敗しました: %w", err)
	}
	return results.Len(), nil
}
