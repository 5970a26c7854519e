// Package app は設定から抽出処理の各コンポーネントを組み立てます
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"PathScope/internal/config"
	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
	"PathScope/internal/usecase/extract"
	"PathScope/internal/usecase/report"
)

// App は1回の実行に必要なコンポーネントをまとめたものです
type App struct {
	Scanner *filesystem.Scanner
	Service *extract.Service
}

// New は cfg に従って App を組み立てます
func New(cfg *config.Config, logger logging.Logger, reporter extract.Reporter, errorReporter extract.ErrorReporter) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}

	enc, err := extract.LookupEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}

	scanner := filesystem.NewScanner(logger, filesystem.WithExclude(cfg.Exclude...))
	extractor := extract.NewExtractor(logger,
		extract.WithEncoding(enc),
		extract.WithSkipBinary(cfg.SkipBinary),
		extract.WithMaxFileSize(cfg.MaxFileSize),
	)
	aggregator := extract.NewAggregator(extractor, scanner, reporter, logger)
	writer := report.NewWriter(cfg.Output)

	return &App{
		Scanner: scanner,
		Service: extract.NewService(scanner, aggregator, writer, reporter, errorReporter, logger),
	}, nil
}

// CountFiles は対象で処理されるファイル数を返します
func (a *App) CountFiles(ctx context.Context, target model.Target) (int, error) {
	if target.IsZero() {
		return 0, model.ErrNoTarget
	}
	if target.IsFile {
		return 1, nil
	}
	return a.Scanner.CountFiles(ctx, target.Path)
}

// ResolveTarget はパスを絶対パスにし、種類を判定して Target を返します。
// forceFile / forceDir が指定された場合はその種類を使います。
func ResolveTarget(path string, forceFile, forceDir bool) (model.Target, error) {
	if path == "" {
		return model.Target{}, model.ErrNoTarget
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.Target{}, fmt.Errorf("絶対パスの取得に失敗しました: %w", err)
	}

	switch {
	case forceFile:
		return model.Target{Path: abs, IsFile: true}, nil
	case forceDir:
		return model.Target{Path: abs}, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return model.Target{}, fmt.Errorf("パスが存在しません: %w", err)
	}
	return model.Target{Path: abs, IsFile: !info.IsDir()}, nil
}

// NewRunLogger は実行IDを付けたロガーを返します
func NewRunLogger(base *logging.JSONLogger) (*logging.JSONLogger, string) {
	runID := logging.NewRunID()
	return base.WithRunID(runID), runID
}
