// Package config はPathScopeの設定を読み込みます
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/usecase/extract"
	"PathScope/internal/usecase/report"
)

// DefaultConfigFile は --config が指定されない場合に作業ディレクトリで探す設定ファイルです
const DefaultConfigFile = "pathscope.yaml"

// 環境変数名
const (
	EnvOutput      = "PATHSCOPE_OUTPUT"
	EnvEncoding    = "PATHSCOPE_ENCODING"
	EnvExclude     = "PATHSCOPE_EXCLUDE"
	EnvSkipBinary  = "PATHSCOPE_SKIP_BINARY"
	EnvMaxFileSize = "PATHSCOPE_MAX_FILE_SIZE"
)

// Config はPathScopeの設定です
type Config struct {
	// Output は結果を書き込むファイルのパスです
	Output string `yaml:"output"`

	// Encoding はファイル内容の文字コードです（空ならUTF-8）
	Encoding string `yaml:"encoding"`

	// Exclude はディレクトリ走査から除外する doublestar パターンです
	Exclude []string `yaml:"exclude"`

	// SkipBinary はバイナリと判定したファイルを読み飛ばします
	SkipBinary bool `yaml:"skip_binary"`

	// MaxFileSize はこれを超えるサイズのファイルを読み飛ばします（0 = 無制限）
	MaxFileSize int64 `yaml:"max_file_size"`
}

// DefaultConfig は既定値の設定を返します
func DefaultConfig() *Config {
	return &Config{
		Output: report.DefaultOutputFile,
	}
}

// Load は 既定値 → 設定ファイル → 環境変数 の順に設定を読み込みます。
// path が空の場合は pathscope.yaml を探し、存在しなければ既定値を使います。
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return nil, err
	}
	if err := cfg.mergeEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return fmt.Errorf("設定ファイルの解析に失敗しました (%s): %w", path, err)
	}

	if fileCfg.Output != "" {
		c.Output = fileCfg.Output
	}
	if fileCfg.Encoding != "" {
		c.Encoding = fileCfg.Encoding
	}
	if len(fileCfg.Exclude) > 0 {
		c.Exclude = fileCfg.Exclude
	}
	if fileCfg.SkipBinary {
		c.SkipBinary = true
	}
	if fileCfg.MaxFileSize != 0 {
		c.MaxFileSize = fileCfg.MaxFileSize
	}
	return nil
}

func (c *Config) mergeEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvOutput)); v != "" {
		c.Output = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEncoding)); v != "" {
		c.Encoding = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExclude)); v != "" {
		c.Exclude = splitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvSkipBinary)); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s の値が不正です: %w", EnvSkipBinary, err)
		}
		c.SkipBinary = b
	}
	if v := strings.TrimSpace(os.Getenv(EnvMaxFileSize)); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s の値が不正です: %w", EnvMaxFileSize, err)
		}
		c.MaxFileSize = n
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// MergeWithFlags はnilでないフラグの値で設定を上書きします
func (c *Config) MergeWithFlags(output, encoding *string, exclude []string, skipBinary *bool, maxFileSize *int64) {
	if output != nil {
		c.Output = *output
	}
	if encoding != nil {
		c.Encoding = *encoding
	}
	if len(exclude) > 0 {
		c.Exclude = append(c.Exclude, exclude...)
	}
	if skipBinary != nil {
		c.SkipBinary = *skipBinary
	}
	if maxFileSize != nil {
		c.MaxFileSize = *maxFileSize
	}
}

// Validate は設定値を検証します
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output) == "" {
		return fmt.Errorf("output が空です")
	}
	if c.MaxFileSize < 0 {
		return fmt.Errorf("max_file_size は0以上である必要があります: %d", c.MaxFileSize)
	}
	if _, err := extract.LookupEncoding(c.Encoding); err != nil {
		return err
	}
	return filesystem.ValidatePatterns(c.Exclude)
}
