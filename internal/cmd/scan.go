package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"PathScope/internal/app"
	"PathScope/internal/domain/model"
	"PathScope/internal/interface/cli"
)

// NewScanCommand は端末上で抽出を行う scan コマンドを作成します
func NewScanCommand(opts *globalOptions) *cobra.Command {
	var forceFile, forceDir bool

	cmd := &cobra.Command{
		Use:   "scan <path>",
		Short: "ファイルまたはディレクトリから API パスを抽出する",
		Long: `指定したファイル、またはディレクトリ配下のすべてのファイルを走査し、
抽出した API パスを出力ファイルに保存します。
パスの種類は自動で判定します。--file / --dir で明示することもできます。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := cli.NewConsoleReporter(cmd.OutOrStdout(), opts.noColor)

			target, err := app.ResolveTarget(args[0], forceFile, forceDir)
			if err != nil {
				reporter.ReportError(err)
				return &ReportedError{Err: err}
			}
			return runExtraction(cmd, opts, reporter, target)
		},
	}

	cmd.Flags().BoolVar(&forceFile, "file", false, "パスを単一ファイルとして扱う")
	cmd.Flags().BoolVar(&forceDir, "dir", false, "パスをディレクトリとして扱う")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")

	return cmd
}

// runExtraction は設定を読み込み、target に対して抽出を実行して集計を表示します
func runExtraction(cmd *cobra.Command, opts *globalOptions, reporter *cli.ConsoleReporter, target model.Target) error {
	summary, err := extractTarget(cmd, opts, reporter, target)
	if err != nil {
		return err
	}
	reporter.PrintSummary(summary)
	return nil
}

func extractTarget(cmd *cobra.Command, opts *globalOptions, reporter *cli.ConsoleReporter, target model.Target) (*model.Summary, error) {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		reporter.ReportError(err)
		return nil, &ReportedError{Err: err}
	}

	logger, closeLog, err := opts.openLogger(cmd.ErrOrStderr())
	if err != nil {
		reporter.ReportError(err)
		return nil, &ReportedError{Err: err}
	}
	defer closeLog()

	runLogger, _ := app.NewRunLogger(logger)
	a, err := app.New(cfg, runLogger, reporter, reporter)
	if err != nil {
		reporter.ReportError(err)
		return nil, &ReportedError{Err: err}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if n, err := a.CountFiles(ctx, target); err == nil {
		reporter.PrintSelection(target, n)
	}

	summary, err := a.Service.Run(ctx, target)
	if err != nil {
		// Service が ErrorReporter に通知済み
		return nil, &ReportedError{Err: err}
	}
	return summary, nil
}
