package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"PathScope/internal/domain/model"
)

func TestNewWriter_DefaultOutput(t *testing.T) {
	w := NewWriter("")
	if w.OutputPath() != DefaultOutputFile {
		t.Errorf("OutputPath() = %v, want %v", w.OutputPath(), DefaultOutputFile)
	}
}

func TestWriter_Write(t *testing.T) {
	tests := []struct {
		name      string
		results   model.ResultSet
		wantCount int
		want      string
	}{
		{
			name:      "ソートして改行で連結",
			results:   model.NewResultSet("/x-y_z/2", "/a/b.c"),
			wantCount: 2,
			want:      "/a/b.c\n/x-y_z/2",
		},
		{
			name:      "バイト順（大文字が先）",
			results:   model.NewResultSet("/b", "/a", "/B", "/a/"),
			wantCount: 4,
			want:      "/B\n/a\n/a/\n/b",
		},
		{
			name:      "空の集合",
			results:   model.NewResultSet(),
			wantCount: 0,
			want:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputPath := filepath.Join(t.TempDir(), "result.txt")
			w := NewWriter(outputPath)

			count, err := w.Write(tt.results)
			if err != nil {
				t.Fatalf("Write() error = %v", err)
			}
			if count != tt.wantCount {
				t.Errorf("Write() count = %v, want %v", count, tt.wantCount)
			}

			data, err := os.ReadFile(outputPath)
			if err != nil {
				t.Fatalf("出力ファイルの読み込みに失敗: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("出力内容が不正: got %q, want %q", string(data), tt.want)
			}
		})
	}
}

func TestWriter_Write_Overwrites(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "result.txt")
	if err := os.WriteFile(outputPath, []byte("/old/one\n/old/two\n/old/three"), 0644); err != nil {
		t.Fatalf("既存ファイルの作成に失敗: %v", err)
	}

	if _, err := NewWriter(outputPath).Write(model.NewResultSet("/new")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("出力ファイルの読み込みに失敗: %v", err)
	}
	if string(data) != "/new" {
		t.Errorf("出力内容が不正: got %q, want %q", string(data), "/new")
	}
}

func TestWriter_Write_Sorted(t *testing.T) {
	results := model.NewResultSet()
	for _, p := range []string{"/z", "/m/n", "/a", "/m", "/0", "/_", "/-", "/."} {
		results.Add(p)
	}

	lines := strings.Split(Format(results), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i-1] > lines[i] {
			t.Errorf("順序が不正: %q > %q", lines[i-1], lines[i])
		}
	}
}

func TestWriter_Write_Error(t *testing.T) {
	dir := t.TempDir()
	// 出力先と同名のディレクトリがあると rename に失敗する
	outputPath := filepath.Join(dir, "result.txt")
	if err := os.MkdirAll(filepath.Join(outputPath, "child"), 0755); err != nil {
		t.Fatalf("ディレクトリの作成に失敗: %v", err)
	}

	if _, err := NewWriter(outputPath).Write(model.NewResultSet("/a")); err == nil {
		t.Error("Write() error = nil, want error")
	}
}
