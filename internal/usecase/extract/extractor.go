// Package extract はAPIパスの抽出と集約を提供します
package extract

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"PathScope/internal/domain/model"
	"PathScope/internal/infrastructure/filesystem"
	"PathScope/internal/infrastructure/logging"
)

// PathPattern は '/' で始まるクォート済み文字列にマッチします。
// キャプチャグループ1がクォートを除いたパスです。
var PathPattern = regexp.MustCompile(`["'](/[a-zA-Z0-9\-_/.]+)["']`)

// ErrSkipped はポリシーによりファイルが読み飛ばされたことを表します
var ErrSkipped = errors.New("ファイルをスキップしました")

// FileExtractor は1ファイルからAPIパスを抽出するインターフェースです
type FileExtractor interface {
	ExtractFile(path string) (model.ResultSet, error)
}

// Extractor は正規表現でファイル内容からAPIパスを抽出します
type Extractor struct {
	pattern     *regexp.Regexp
	logger      logging.Logger
	encoding    encoding.Encoding
	skipBinary  bool
	maxFileSize int64
}

// ExtractorOption は Extractor の設定を変更します
type ExtractorOption func(*Extractor)

// WithEncoding はファイル内容の文字コードを設定します。nil はUTF-8です。
func WithEncoding(enc encoding.Encoding) ExtractorOption {
	return func(e *Extractor) {
		e.encoding = enc
	}
}

// WithSkipBinary はバイナリと判定したファイルを読み飛ばすかどうかを設定します
func WithSkipBinary(skip bool) ExtractorOption {
	return func(e *Extractor) {
		e.skipBinary = skip
	}
}

// WithMaxFileSize はこのサイズ(バイト)を超えるファイルを読み飛ばします。0 は無制限です。
func WithMaxFileSize(size int64) ExtractorOption {
	return func(e *Extractor) {
		e.maxFileSize = size
	}
}

// NewExtractor は新しい Extractor インスタンスを作成します
func NewExtractor(logger logging.Logger, opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		pattern: PathPattern,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// LookupEncoding は文字コード名を解決します。空文字列とUTF-8は nil を返します。
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("未対応の文字コードです: %q: %w", name, err)
	}
	return enc, nil
}

// Decode はバイト列を文字列に変換します。
// BOM があればそれに従い、変換できないバイトは取り除きます。
func (e *Extractor) Decode(content []byte) string {
	var fallback transform.Transformer = transform.Nop
	if e.encoding != nil {
		fallback = e.encoding.NewDecoder()
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(fallback), content)
	if err != nil {
		decoded = content
	}
	return strings.ToValidUTF8(string(decoded), "")
}

// ExtractText はテキスト中の重ならないすべてのマッチを集合として返します
func (e *Extractor) ExtractText(text string) model.ResultSet {
	results := model.NewResultSet()
	for _, m := range e.pattern.FindAllStringSubmatch(text, -1) {
		results.Add(m[1])
	}
	return results
}

// ExtractFile はファイルを読み込みAPIパスを抽出します。
// 読み込みに失敗した場合は空の集合とエラーを返します。
func (e *Extractor) ExtractFile(path string) (model.ResultSet, error) {
	if e.maxFileSize > 0 {
		info, err := os.Stat(path)
		if err != nil {
			e.logger.Log(logging.LevelError, fmt.Sprintf("ファイル '%s' の読み込みに失敗", path), err)
			return model.NewResultSet(), err
		}
		if info.Size() > e.maxFileSize {
			e.logger.Log(logging.LevelWarn, fmt.Sprintf("サイズ上限を超えるためスキップ: %s (%d バイト)", path, info.Size()), nil)
			return model.NewResultSet(), fmt.Errorf("%w: サイズ上限超過: %s", ErrSkipped, path)
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		e.logger.Log(logging.LevelError, fmt.Sprintf("ファイル '%s' の読み込みに失敗", path), err)
		return model.NewResultSet(), err
	}

	if e.skipBinary && filesystem.IsBinary(content) {
		e.logger.Log(logging.LevelWarn, fmt.Sprintf("バイナリファイルのためスキップ: %s", path), nil)
		return model.NewResultSet(), fmt.Errorf("%w: バイナリファイル: %s", ErrSkipped, path)
	}

	return e.ExtractText(e.Decode(content)), nil
}
