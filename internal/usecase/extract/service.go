package extract

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
)

// ResultWriter は抽出結果を永続化するインターフェースです
type ResultWriter interface {
	Write(results model.ResultSet) (int, error)
	OutputPath() string
}

// Service は 検証 → 走査・集約 → 書き込み → 報告 を一度に実行します
type Service struct {
	validator     filesystem.TargetValidator
	aggregator    *Aggregator
	writer        ResultWriter
	reporter      Reporter
	errorReporter ErrorReporter
	logger        logging.Logger
}

// NewService は新しい Service インスタンスを作成します
func NewService(
	validator filesystem.TargetValidator,
	aggregator *Aggregator,
	writer ResultWriter,
	reporter Reporter,
	errorReporter ErrorReporter,
	logger logging.Logger,
) *Service {
	if reporter == nil {
		reporter = nopReporter{}
	}
	if errorReporter == nil {
		errorReporter = nopReporter{}
	}
	return &Service{
		validator:     validator,
		aggregator:    aggregator,
		writer:        writer,
		reporter:      reporter,
		errorReporter: errorReporter,
		logger:        logger,
	}
}

// Run は対象からAPIパスを抽出して出力ファイルに保存します。
// 失敗した場合は ErrorReporter に通知し、進捗を0に戻してからエラーを返します。
func (s *Service) Run(ctx context.Context, target model.Target) (*model.Summary, error) {
	summary, err := s.run(ctx, target)
	if err != nil {
		s.logger.Log(logging.LevelError, "抽出処理に失敗", err)
		s.errorReporter.ReportError(err)
		s.reporter.Report(0, "エラーが発生しました")
		return nil, err
	}
	return summary, nil
}

// validate は対象を検証します。
// 単一ファイルが読めない場合は Extractor に任せ、失敗として数えます。
func (s *Service) validate(target model.Target) error {
	err := s.validator.ValidateTarget(target)
	if target.IsFile && errors.Is(err, fs.ErrNotExist) {
		s.logger.Log(logging.LevelWarn, fmt.Sprintf("ファイルが見つかりません: %s", target.Path), err)
		return nil
	}
	return err
}

func (s *Service) run(ctx context.Context, target model.Target) (*model.Summary, error) {
	start := time.Now()

	if target.IsZero() {
		return nil, model.ErrNoTarget
	}
	if err := s.validate(target); err != nil {
		return nil, fmt.Errorf("対象の検証に失敗しました: %w", err)
	}
	s.logger.Log(logging.LevelInfo, fmt.Sprintf("抽出を開始します: %s", target.Path), nil)

	results, stats, err := s.aggregator.Aggregate(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("APIパスの抽出に失敗しました: %w", err)
	}

	count, err := s.writer.Write(results)
	if err != nil {
		return nil, fmt.Errorf("結果の保存に失敗しました: %w", err)
	}

	summary := &model.Summary{
		Target:       target,
		OutputPath:   s.writer.OutputPath(),
		FilesScanned: stats.FilesScanned,
		FilesFailed:  stats.FilesFailed,
		FilesSkipped: stats.FilesSkipped,
		FailedFiles:  stats.Failed,
		PathCount:    count,
		Duration:     time.Since(start),
	}

	s.logger.Log(logging.LevelInfo, fmt.Sprintf("%d ファイルから %d 件のAPIパスを抽出しました (失敗: %d, スキップ: %d)",
		stats.FilesScanned, count, stats.FilesFailed, stats.FilesSkipped), nil)
	s.reporter.Report(100, fmt.Sprintf("%d 件のAPIパスを %s に保存しました", count, summary.OutputPath))

	return summary, nil
}
