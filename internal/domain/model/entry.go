// package model はドメインモデルを定義します
package model

import (
	"errors"
	"time"
)

var (
	// ErrNoTarget は対象のファイルまたはディレクトリが選択されていないことを表します
	ErrNoTarget = errors.New("ファイルまたはディレクトリが選択されていません")
	// ErrNotFile は単一ファイルとして選択されたパスがファイルでないことを表します
	ErrNotFile = errors.New("指定されたパスはファイルではありません")
	// ErrNotDirectory はディレクトリとして選択されたパスがディレクトリでないことを表します
	ErrNotDirectory = errors.New("指定されたパスはディレクトリではありません")
)

// Target は抽出対象（単一ファイルまたはディレクトリ）を表します
type Target struct {
	// Path は対象の絶対パスを表します
	Path string
	// IsFile は単一ファイルが選択されたかどうかを示します
	IsFile bool
}

// IsZero は対象が未選択かどうかを返します
func (t Target) IsZero() bool {
	return t.Path == ""
}

// SourceFile はディレクトリ走査で見つかったファイルを表します
type SourceFile struct {
	// Path はファイルの絶対パスを表します
	Path string
	// RelPath はルートディレクトリからの相対パスを表します
	RelPath string
}

// ProgressEvent は進捗通知の内容を表します
type ProgressEvent struct {
	Percent int
	Message string
}

// Summary は1回の抽出処理の結果を表します
type Summary struct {
	Target       Target
	OutputPath   string
	FilesScanned int
	FilesFailed  int
	FilesSkipped int
	FailedFiles  []string
	PathCount    int
	Duration     time.Duration
}
