// Package filesystem はファイルシステム操作を提供します
package filesystem

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/logging"
)

const DefaultBinaryCheckSize = 1024

// DirectoryValidator はディレクトリの検証機能を提供するインターフェースです
type DirectoryValidator interface {
	ValidateDirectoryPath(path string) error
}

// TargetValidator は抽出対象の検証機能を提供するインターフェースです
type TargetValidator interface {
	DirectoryValidator
	ValidateFilePath(path string) error
	ValidateTarget(target model.Target) error
}

// FileLister はディレクトリ配下のファイル一覧を提供するインターフェースです
type FileLister interface {
	ListFiles(ctx context.Context, rootDir string) ([]model.SourceFile, error)
}

// Scanner はファイルシステムをスキャンするための構造体です
type Scanner struct {
	logger  logging.Logger
	exclude []string
}

// Option は Scanner の設定を変更します
type Option func(*Scanner)

// WithExclude は走査から除外する doublestar パターンを設定します。
// パターンはルートからのスラッシュ区切り相対パスに対して照合されます。
func WithExclude(patterns ...string) Option {
	return func(s *Scanner) {
		s.exclude = append(s.exclude, patterns...)
	}
}

// NewScanner は新しい Scanner インスタンスを作成します
func NewScanner(logger logging.Logger, opts ...Option) *Scanner {
	s := &Scanner{logger: logger}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ValidatePatterns は除外パターンがすべて有効かどうかを確認します
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("不正な除外パターンです: %q", p)
		}
	}
	return nil
}

func validatePath(path string) (os.FileInfo, error) {
	if path == "" {
		return nil, model.ErrNoTarget
	}

	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("絶対パスで指定してください")
	}

	// Windows ではファイル名に使えない文字
	if runtime.GOOS == "windows" && strings.ContainsAny(path, "<>|?*") {
		return nil, fmt.Errorf("パスに不正な文字が含まれています")
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("パスが存在しません: %w", err)
	}
	return info, nil
}

// ValidateDirectoryPath はパスが安全で有効なディレクトリであることを確認します
func (s *Scanner) ValidateDirectoryPath(path string) error {
	info, err := validatePath(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return model.ErrNotDirectory
	}
	return nil
}

// ValidateFilePath はパスが安全で有効なファイルであることを確認します
func (s *Scanner) ValidateFilePath(path string) error {
	info, err := validatePath(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return model.ErrNotFile
	}
	return nil
}

// ValidateTarget は対象の種類に応じてパスを検証します
func (s *Scanner) ValidateTarget(target model.Target) error {
	if target.IsZero() {
		return model.ErrNoTarget
	}
	if target.IsFile {
		return s.ValidateFilePath(target.Path)
	}
	return s.ValidateDirectoryPath(target.Path)
}

// IsBinary は先頭 DefaultBinaryCheckSize バイトまでを調べてバイナリかどうかを判定します
func IsBinary(content []byte) bool {
	checkSize := DefaultBinaryCheckSize
	if len(content) < checkSize {
		checkSize = len(content)
	}

	// NULL(0x00)や制御不能文字を検出
	for i := 0; i < checkSize; i++ {
		if content[i] == 0x00 || (content[i] < 0x09 && content[i] != 0x0A && content[i] != 0x0D) {
			return true
		}
	}
	return false
}

func (s *Scanner) excluded(relPath string) bool {
	for _, p := range s.exclude {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

// ListFiles はディレクトリを再帰的に走査し、すべてのファイルを一度ずつ返します。
// ディレクトリへのシンボリックリンクは循環を避けるため辿りません。
// ファイルへのシンボリックリンクとリンク切れは一覧に含めます。
func (s *Scanner) ListFiles(ctx context.Context, rootDir string) ([]model.SourceFile, error) {
	var files []model.SourceFile

	err := filepath.WalkDir(rootDir, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if err != nil {
			if path == rootDir {
				return err
			}
			s.logger.Log(logging.LevelWarn, fmt.Sprintf("パス '%s' の走査中にエラー発生", path), err)
			return nil
		}

		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			s.logger.Log(logging.LevelWarn, fmt.Sprintf("相対パスの取得に失敗: %s", path), err)
			return nil
		}

		if relPath == "." {
			return nil
		}

		if s.excluded(filepath.ToSlash(relPath)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}

		switch mode := d.Type(); {
		case mode&fs.ModeSymlink != 0:
			info, statErr := os.Stat(path)
			if statErr == nil && info.IsDir() {
				s.logger.Log(logging.LevelWarn, fmt.Sprintf("ディレクトリへのシンボリックリンクのためスキップ: %s", path), nil)
				return nil
			}
		case !mode.IsRegular():
			s.logger.Log(logging.LevelWarn, fmt.Sprintf("通常ファイルではないためスキップ: %s", path), nil)
			return nil
		}

		files = append(files, model.SourceFile{
			Path:    path,
			RelPath: relPath,
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("ファイルシステムの走査に失敗しました: %w", err)
	}

	return files, nil
}

// CountFiles は ListFiles が返すファイル数を数えます
func (s *Scanner) CountFiles(ctx context.Context, rootDir string) (int, error) {
	files, err := s.ListFiles(ctx, rootDir)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
