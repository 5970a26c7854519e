package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"PathScope/internal/config"
	"PathScope/internal/gui"
	"PathScope/internal/infrastructure/logging"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// ReportedError は利用者に通知済みのエラーです。main は再表示しません。
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string { return e.Err.Error() }
func (e *ReportedError) Unwrap() error { return e.Err }

// IsReported は err が通知済みかどうかを返します
func IsReported(err error) bool {
	var re *ReportedError
	return errors.As(err, &re)
}

// globalOptions は全コマンド共通のフラグです
type globalOptions struct {
	configPath  string
	output      string
	encoding    string
	exclude     []string
	skipBinary  bool
	maxFileSize int64
	logFile     string
	noColor     bool
}

func (o *globalOptions) register(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVar(&o.configPath, "config", "", "設定ファイルのパス (既定: ./"+config.DefaultConfigFile+")")
	f.StringVarP(&o.output, "output", "o", "", "結果を書き込むファイル (既定: result.txt)")
	f.StringVar(&o.encoding, "encoding", "", "ファイルの文字コード (例: utf-8, gbk, shift_jis)")
	f.StringArrayVar(&o.exclude, "exclude", nil, "走査から除外する glob パターン (複数指定可)")
	f.BoolVar(&o.skipBinary, "skip-binary", false, "バイナリと判定したファイルを読み飛ばす")
	f.Int64Var(&o.maxFileSize, "max-file-size", 0, "このバイト数を超えるファイルを読み飛ばす (0 = 無制限)")
	f.StringVar(&o.logFile, "log-file", "", "ログの出力先ファイル (既定: 標準エラー出力)")
	f.BoolVar(&o.noColor, "no-color", false, "色付き出力を無効にする")
}

// loadConfig は設定ファイルと環境変数を読み込み、明示されたフラグで上書きします
func (o *globalOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	var (
		output, encoding *string
		skipBinary       *bool
		maxFileSize      *int64
	)
	if flags.Changed("output") {
		output = &o.output
	}
	if flags.Changed("encoding") {
		encoding = &o.encoding
	}
	if flags.Changed("skip-binary") {
		skipBinary = &o.skipBinary
	}
	if flags.Changed("max-file-size") {
		maxFileSize = &o.maxFileSize
	}
	cfg.MergeWithFlags(output, encoding, o.exclude, skipBinary, maxFileSize)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定が不正です: %w", err)
	}
	return cfg, nil
}

// openLogger は --log-file に従ってロガーを作成します
func (o *globalOptions) openLogger(stderr io.Writer) (*logging.JSONLogger, func(), error) {
	if o.logFile == "" {
		return logging.NewJSONLogger(stderr), func() {}, nil
	}
	f, err := os.OpenFile(o.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("ログファイルを開けません: %w", err)
	}
	return logging.NewJSONLogger(f), func() { f.Close() }, nil
}

// NewRootCommand creates and returns the root cobra command for pathscope
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "pathscope",
		Short: "ファイルやディレクトリから API パスを抽出するツール",
		Long: `pathscope はファイルまたはディレクトリ配下のすべてのファイルから
'/' で始まるクォート済み文字列 (例: "/api/v1/users") を抽出し、
重複を除いてソートした一覧を result.txt に保存します。

引数なしで実行するとデスクトップウィンドウを開きます。`,
		Version:       Version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			logger, closeLog, err := opts.openLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()

			gui.NewWindow(fyneapp.NewWithID("io.pathscope"), cfg, logger).ShowAndRun()
			return nil
		},
	}
	opts.register(cmd)

	cmd.AddCommand(NewScanCommand(opts))
	cmd.AddCommand(NewPickCommand(opts))

	return cmd
}
