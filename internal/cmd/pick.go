package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
	"PathScope/internal/interface/cli"
	"PathScope/internal/interface/ui"
)

// NewPickCommand はネイティブダイアログで対象を選んで抽出する pick コマンドを作成します
func NewPickCommand(opts *globalOptions) *cobra.Command {
	var pickDir bool

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "ダイアログで対象を選択して API パスを抽出する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reporter := cli.NewConsoleReporter(cmd.OutOrStdout(), opts.noColor)
			selector := ui.NewTargetSelector(filesystem.NewScanner(logging.Discard{}))

			var (
				target model.Target
				err    error
			)
			if pickDir {
				target, err = selector.SelectDirectory("ディレクトリを選択")
			} else {
				target, err = selector.SelectFile("ファイルを選択")
			}
			if errors.Is(err, ui.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), err)
				return nil
			}
			if err != nil {
				reporter.ReportError(err)
				ui.ShowError(err)
				return &ReportedError{Err: err}
			}

			summary, err := extractTarget(cmd, opts, reporter, target)
			if err != nil {
				ui.ShowError(err)
				return err
			}
			reporter.PrintSummary(summary)
			ui.ShowInfo("完了", fmt.Sprintf("%d 件のAPIパスを抽出しました\n保存先: %s", summary.PathCount, summary.OutputPath))
			return nil
		},
	}

	cmd.Flags().BoolVar(&pickDir, "dir", false, "ファイルではなくディレクトリを選択する")

	return cmd
}
