package service

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
)

func mustBatch(t *testing.T, source string) *domain.BatchResult {
	t.Helper()
	tempDir := t.TempDir()
	path := filepath.Join(tempDir, "app.js")
	if err := os.WriteFile(path, []byte(source), 0644); err != nil {
		t.Fatalf("write test file: %v", err)
	}

	svc := NewBatchService(&config.BatchConfig{Concurrency: 1}, NewProgressManager(false))
	result, err := svc.Run(context.Background(), []string{path}, "_temp", domain.PassSelection{
		Unsequence: true, Respelling: true, IfBraces: true, LabelFunctionArray: true,
	})
	if err != nil {
		t.Fatalf("batch run failed: %v", err)
	}
	return result
}

func TestDiffServiceProducesHunks(t *testing.T) {
	batch := mustBatch(t, "var a=1, b=2;\n")
	if len(batch.Files) != 1 || batch.Files[0].Err != nil {
		t.Fatalf("expected 1 successful file, got %+v", batch)
	}

	d := NewDiffService()
	result := d.Diff(batch.Files[0].Path, batch.Files[0].Original, batch.Files[0].Output)
	if result.Diff == "" {
		t.Fatal("expected non-empty diff for a changed file")
	}
	if result.HunkCount == 0 {
		t.Error("expected at least one hunk")
	}
}

func TestDiffServiceNoChangeProducesNoHunks(t *testing.T) {
	d := NewDiffService()
	result := d.Diff("app.js", "var a = 1;\n", "var a = 1;\n")
	if result.Diff != "" {
		t.Errorf("expected empty diff for identical input/output, got %q", result.Diff)
	}
	if result.HunkCount != 0 {
		t.Errorf("expected zero hunks, got %d", result.HunkCount)
	}
}

func TestReportServiceMarkdownAndHTML(t *testing.T) {
	batch := mustBatch(t, "var a=1, b=2;\n")
	r := NewReportService()
	runID := r.RunID()
	if runID == "" {
		t.Fatal("expected a non-empty run ID")
	}

	md := r.Markdown(batch, runID)
	if !strings.Contains(md, runID) {
		t.Error("expected the markdown report to mention its run ID")
	}
	if !strings.Contains(md, batch.Files[0].Path) {
		t.Error("expected the markdown report to list the processed file")
	}

	html, err := r.HTML(batch, runID)
	if err != nil {
		t.Fatalf("HTML render failed: %v", err)
	}
	if !strings.Contains(html, "<html") {
		t.Errorf("expected rendered HTML to contain an <html> tag, got: %s", html)
	}
}

func TestCheckServiceFlagsSequenceExpression(t *testing.T) {
	svc := NewCheckService()
	source := []byte("a = (f(), g());\n")
	result, err := svc.Check([]string{"app.js"}, map[string][]byte{"app.js": source}, "_temp",
		domain.PassSelection{}) // no passes: the SequenceExpression survives untouched
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if result.Passed {
		t.Fatal("expected check to fail on an un-transformed sequence expression")
	}
	if result.Summary.SequenceFindings == 0 {
		t.Error("expected at least one sequence finding")
	}
}

func TestCheckServicePassesAfterTransform(t *testing.T) {
	svc := NewCheckService()
	source := []byte("var a = !0;\n")
	result, err := svc.Check([]string{"app.js"}, map[string][]byte{"app.js": source}, "_temp",
		domain.PassSelection{Respelling: true})
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if !result.Passed {
		t.Fatalf("expected check to pass, got violations: %+v", result.Violations)
	}
}

func TestOutputFormatterWriteBatchResultText(t *testing.T) {
	batch := mustBatch(t, "var a=1, b=2;\n")
	var buf bytes.Buffer
	f := NewOutputFormatter()
	if err := f.WriteBatchResult(batch, domain.OutputFormatText, &buf); err != nil {
		t.Fatalf("WriteBatchResult failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("expected non-empty text output")
	}
}

func TestOutputFormatterWriteBatchResultJSON(t *testing.T) {
	batch := mustBatch(t, "var a=1, b=2;\n")
	var buf bytes.Buffer
	f := NewOutputFormatter()
	if err := f.WriteBatchResult(batch, domain.OutputFormatJSON, &buf); err != nil {
		t.Fatalf("WriteBatchResult failed: %v", err)
	}
	if !strings.Contains(buf.String(), `"total_files"`) {
		t.Errorf("expected JSON output to contain total_files, got: %s", buf.String())
	}
}
