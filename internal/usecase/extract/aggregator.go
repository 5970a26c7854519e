package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
)

// Stats は集約処理でのファイル数の内訳です
type Stats struct {
	FilesScanned int
	FilesFailed  int
	FilesSkipped int
	// Failed は読み込めなかったファイルの表示名（ディレクトリでは相対パス）です
	Failed []string
}

// Aggregator は対象配下の全ファイルから抽出した結果を1つの集合にまとめます
type Aggregator struct {
	extractor FileExtractor
	lister    filesystem.FileLister
	reporter  Reporter
	logger    logging.Logger
}

// NewAggregator は新しい Aggregator インスタンスを作成します。
// reporter が nil の場合、進捗は通知されません。
func NewAggregator(extractor FileExtractor, lister filesystem.FileLister, reporter Reporter, logger logging.Logger) *Aggregator {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Aggregator{
		extractor: extractor,
		lister:    lister,
		reporter:  reporter,
		logger:    logger,
	}
}

// Aggregate は対象を走査してAPIパスの集合を返します。
// ファイル単位のエラーは Stats に数えるだけで処理は継続します。
func (a *Aggregator) Aggregate(ctx context.Context, target model.Target) (model.ResultSet, Stats, error) {
	var stats Stats
	results := model.NewResultSet()

	if target.IsZero() {
		return nil, stats, model.ErrNoTarget
	}

	if target.IsFile {
		a.reporter.Report(0, "ファイルを処理中...")
		a.extractInto(results, &stats, model.SourceFile{Path: target.Path, RelPath: filepath.Base(target.Path)})
		a.reporter.Report(100, "ファイルの処理が完了しました")
		return results, stats, nil
	}

	files, err := a.lister.ListFiles(ctx, target.Path)
	if err != nil {
		return nil, stats, err
	}

	total := len(files)
	a.reporter.Report(0, fmt.Sprintf("%d 個のファイルを処理します", total))

	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("処理が中断されました: %w", err)
		}
		a.extractInto(results, &stats, f)
		a.reporter.Report(Percent(i+1, total), fmt.Sprintf("処理中: %d/%d ファイル", i+1, total))
	}

	return results, stats, nil
}

func (a *Aggregator) extractInto(results model.ResultSet, stats *Stats, f model.SourceFile) {
	found, err := a.extractor.ExtractFile(f.Path)
	stats.FilesScanned++
	switch {
	case errors.Is(err, ErrSkipped):
		stats.FilesSkipped++
		return
	case err != nil:
		stats.FilesFailed++
		stats.Failed = append(stats.Failed, f.RelPath)
		return
	}
	results.Merge(found)
}
