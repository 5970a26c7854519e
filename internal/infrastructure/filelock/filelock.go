// Package filelock は出力ファイルの排他ロックとアトミックな書き込みを提供します
package filelock

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockSuffix はロックファイル名に付与する接尾辞です
const LockSuffix = ".lock"

// FileLock は flock によるファイルロックです
type FileLock struct {
	flock *flock.Flock
	path  string
}

// New は path にロックファイルを置く FileLock を作成します
func New(path string) *FileLock {
	return &FileLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Lock は排他ロックを取得するまで待機します
func (fl *FileLock) Lock() error {
	if err := fl.flock.Lock(); err != nil {
		return fmt.Errorf("ロックの取得に失敗しました (%s): %w", fl.path, err)
	}
	return nil
}

// Unlock はロックを解放します
func (fl *FileLock) Unlock() error {
	if err := fl.flock.Unlock(); err != nil {
		return fmt.Errorf("ロックの解放に失敗しました (%s): %w", fl.path, err)
	}
	return nil
}

// AtomicWrite は同じディレクトリの一時ファイルに書き込んでから rename します。
// 途中で失敗した場合、既存のファイルは変更されません。
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("ディレクトリの作成に失敗しました (%s): %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("一時ファイルの作成に失敗しました: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("一時ファイルへの書き込みに失敗しました: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("一時ファイルの同期に失敗しました: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("一時ファイルのクローズに失敗しました: %w", err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("パーミッションの設定に失敗しました: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("出力ファイルの置き換えに失敗しました (%s): %w", path, err)
	}
	return nil
}

// LockAndWrite は path+".lock" のロックを保持したまま AtomicWrite を行います
func LockAndWrite(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ディレクトリの作成に失敗しました (%s): %w", dir, err)
		}
	}

	lock := New(path + LockSuffix)
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()

	return AtomicWrite(path, data)
}
