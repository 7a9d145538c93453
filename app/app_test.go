package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
)

func TestFileHelperCollectJSFiles(t *testing.T) {
	// Create temp directory with test files
	tempDir := t.TempDir()

	// Create test files
	testFiles := []string{"test.js", "test.ts", "test.jsx", "test.tsx", "test.txt"}
	for _, f := range testFiles {
		path := filepath.Join(tempDir, f)
		if err := os.WriteFile(path, []byte("// test"), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	helper := NewFileHelper()

	// Test collecting JS files
	files, err := helper.CollectJSFiles([]string{tempDir}, true, nil, nil)
	if err != nil {
		t.Fatalf("CollectJSFiles failed: %v", err)
	}

	// Should find 4 JS/TS files
	if len(files) != 4 {
		t.Errorf("Expected 4 JS/TS files, got %d", len(files))
	}
}

func TestFileHelperIsValidJSFile(t *testing.T) {
	helper := NewFileHelper()

	tests := []struct {
		path     string
		expected bool
	}{
		{"test.js", true},
		{"test.ts", true},
		{"test.jsx", true},
		{"test.tsx", true},
		{"test.mjs", true},
		{"test.cjs", true},
		{"test.mts", true},
		{"test.cts", true},
		{"test.py", false},
		{"test.go", false},
		{"test.txt", false},
	}

	for _, tt := range tests {
		result := helper.IsValidJSFile(tt.path)
		if result != tt.expected {
			t.Errorf("IsValidJSFile(%s) = %v, expected %v", tt.path, result, tt.expected)
		}
	}
}

func TestFileHelperFileExists(t *testing.T) {
	helper := NewFileHelper()

	// Create temp file
	tempFile, err := os.CreateTemp("", "test*.js")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	tempFile.Close()
	defer os.Remove(tempFile.Name())

	// Test existing file
	exists, err := helper.FileExists(tempFile.Name())
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if !exists {
		t.Error("Expected file to exist")
	}

	// Test non-existing file
	exists, err = helper.FileExists("/nonexistent/file.js")
	if err != nil {
		t.Fatalf("FileExists failed: %v", err)
	}
	if exists {
		t.Error("Expected file to not exist")
	}
}

func TestFileHelperIsExcluded(t *testing.T) {
	helper := NewFileHelper()

	tests := []struct {
		path            string
		excludePatterns []string
		expected        bool
	}{
		{"test.js", []string{"*.spec.js"}, false},
		{"test.spec.js", []string{"*.spec.js"}, true},
		{"test.test.js", []string{"*.test.js"}, true},
		{"node_modules/test.js", []string{"node_modules"}, true},
		{"src/test.js", []string{"node_modules"}, false},
	}

	for _, tt := range tests {
		result := helper.isExcluded(tt.path, tt.excludePatterns)
		if result != tt.expected {
			t.Errorf("isExcluded(%s, %v) = %v, expected %v", tt.path, tt.excludePatterns, result, tt.expected)
		}
	}
}

func TestResolveFilePaths(t *testing.T) {
	// Create temp directory with test files
	tempDir := t.TempDir()

	testFile := filepath.Join(tempDir, "test.js")
	if err := os.WriteFile(testFile, []byte("// test"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	helper := NewFileHelper()

	// Test with existing file
	files, err := ResolveFilePaths(helper, []string{testFile}, true, nil, nil)
	if err != nil {
		t.Fatalf("ResolveFilePaths failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %d", len(files))
	}

	// Test with directory
	files, err = ResolveFilePaths(helper, []string{tempDir}, true, nil, nil)
	if err != nil {
		t.Fatalf("ResolveFilePaths failed: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("Expected 1 file, got %d", len(files))
	}
}

func TestDefaultDeobfuscateConfig(t *testing.T) {
	cfg := DefaultDeobfuscateConfig()

	if !cfg.Passes.Unsequence || !cfg.Passes.Respelling || !cfg.Passes.IfBraces || !cfg.Passes.LabelFunctionArray {
		t.Error("expected Unsequence, Respelling, IfBraces, LabelFunctionArray enabled by default")
	}
	if cfg.Passes.FlattenInvoked {
		t.Error("expected FlattenInvoked disabled by default")
	}
	if cfg.Prefix != "_temp" {
		t.Errorf("expected default prefix _temp, got %q", cfg.Prefix)
	}
	if cfg.OutputFormat != domain.OutputFormatText {
		t.Errorf("expected default output format text, got %q", cfg.OutputFormat)
	}
}

func TestDeobfuscateUseCaseExecute(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "app.js")
	if err := os.WriteFile(src, []byte("var a=1, b=2;\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	uc := NewDeobfuscateUseCase(&config.BatchConfig{Concurrency: 1}, &noopProgressManager{})
	cfg := DefaultDeobfuscateConfig()
	cfg.Diff = true

	result, err := uc.Execute(context.Background(), cfg, []string{tempDir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Batch.TotalFiles != 1 || result.Batch.FailedFiles != 0 {
		t.Fatalf("expected 1 successful file, got %+v", result.Batch)
	}
	if len(result.Diffs) != 1 {
		t.Fatalf("expected 1 diff, got %d", len(result.Diffs))
	}
}

func TestDeobfuscateUseCaseNoFiles(t *testing.T) {
	tempDir := t.TempDir()
	uc := NewDeobfuscateUseCase(&config.BatchConfig{Concurrency: 1}, &noopProgressManager{})

	if _, err := uc.Execute(context.Background(), DefaultDeobfuscateConfig(), []string{tempDir}); err == nil {
		t.Error("expected an error when no JS/TS files are found")
	}
}

func TestCheckUseCaseExecute(t *testing.T) {
	tempDir := t.TempDir()
	src := filepath.Join(tempDir, "app.js")
	if err := os.WriteFile(src, []byte("var a = !0;\n"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	uc := NewCheckUseCase()
	cfg := CheckConfig{
		Prefix: "_temp",
		Passes: domain.PassSelection{Respelling: true},
	}

	result, err := uc.Execute(context.Background(), cfg, []string{tempDir})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Summary.FilesChecked != 1 {
		t.Errorf("expected 1 file checked, got %d", result.Summary.FilesChecked)
	}
	if !result.Passed {
		t.Errorf("expected check to pass once !0 is respelled, got violations: %+v", result.Violations)
	}
}

// noopProgressManager is a minimal domain.ProgressManager for tests that
// don't exercise progress reporting.
type noopProgressManager struct{}

func (p *noopProgressManager) StartTask(_ string, _ int) domain.TaskProgress { return &noopTaskProgress{} }
func (p *noopProgressManager) IsInteractive() bool                          { return false }
func (p *noopProgressManager) Close()                                       {}

type noopTaskProgress struct{}

func (t *noopTaskProgress) Increment(_ int)          {}
func (t *noopTaskProgress) Describe(_ string)        {}
func (t *noopTaskProgress) Complete()                {}
