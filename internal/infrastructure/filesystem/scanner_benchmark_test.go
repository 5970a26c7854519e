package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"PathScope/internal/infrastructure/logging"
)

// setupBenchmarkDir creates a temporary directory structure for benchmarking.
func setupBenchmarkDir(tb testing.TB, depth, filesPerDir, dirsPerDir int) string {
	tb.Helper()
	tempDir := tb.TempDir()
	createDirContents(tb, tempDir, depth, filesPerDir, dirsPerDir)
	return tempDir
}

func createDirContents(tb testing.TB, currentPath string, depth, filesPerDir, dirsPerDir int) {
	tb.Helper()
	if depth <= 0 {
		return
	}

	for i := 0; i < filesPerDir; i++ {
		fileName := filepath.Join(currentPath, fmt.Sprintf("file_%d_%d.js", depth, i))
		content := []byte(fmt.Sprintf("fetch(\"/api/v%d/item/%d\")", depth, i))
		if err := os.WriteFile(fileName, content, 0644); err != nil {
			tb.Fatalf("Failed to write file %s: %v", fileName, err)
		}
	}

	for i := 0; i < dirsPerDir; i++ {
		subDir := filepath.Join(currentPath, fmt.Sprintf("subdir_%d_%d", depth, i))
		if err := os.Mkdir(subDir, 0755); err != nil {
			tb.Fatalf("Failed to create subdir %s: %v", subDir, err)
		}
		createDirContents(tb, subDir, depth-1, filesPerDir, dirsPerDir)
	}
}

// BenchmarkScanner_ListFiles benchmarks the ListFiles function.
func BenchmarkScanner_ListFiles(b *testing.B) {
	scanner := NewScanner(logging.Discard{})
	tempDir := setupBenchmarkDir(b, 3, 5, 2)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := scanner.ListFiles(context.Background(), tempDir); err != nil {
			b.Fatalf("ListFiles failed during benchmark: %v", err)
		}
	}
}
