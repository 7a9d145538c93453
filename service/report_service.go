package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"

	"github.com/ludo-technologies/jsopen/domain"
)

// ReportService renders a domain.BatchResult as a per-file Markdown summary
// table (pass counts: sequences unsequenced, ternaries split, IIFEs
// flattened, and an array-functions column that reads PassStats'
// ArrayFunctionsNamed, which is always zero). Markdown is the source of truth;
// HTML output renders that Markdown with goldmark rather than maintaining
// a second html/template.
type ReportService struct{}

// NewReportService creates a ReportService.
func NewReportService() *ReportService {
	return &ReportService{}
}

// RunID is a fresh identifier stamped into each rendered report.
func (s *ReportService) RunID() string {
	return uuid.NewString()
}

// Markdown renders batch as a Markdown report.
func (s *ReportService) Markdown(batch *domain.BatchResult, runID string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Deobfuscation report\n\n")
	fmt.Fprintf(&sb, "- Run: `%s`\n", runID)
	fmt.Fprintf(&sb, "- Generated: %s\n", batch.GeneratedAt)
	fmt.Fprintf(&sb, "- Version: %s\n", batch.Version)
	fmt.Fprintf(&sb, "- Files: %d (%d failed)\n", batch.TotalFiles, batch.FailedFiles)
	fmt.Fprintf(&sb, "- Duration: %dms\n\n", batch.Duration)

	sb.WriteString("| File | Sequences | Ternaries | IIFEs | Array fns | Status |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---|\n")
	for _, f := range batch.Files {
		status := "ok"
		if f.Err != nil {
			status = "error: " + f.Err.Error()
		}
		fmt.Fprintf(&sb, "| %s | %d | %d | %d | %d | %s |\n",
			f.Path, f.Stats.SequencesEliminated, f.Stats.TernariesConverted,
			f.Stats.IIFEsFlattened, f.Stats.ArrayFunctionsNamed, status)
	}

	return sb.String()
}

// HTML renders batch's Markdown report to an HTML document.
func (s *ReportService) HTML(batch *domain.BatchResult, runID string) (string, error) {
	md := s.Markdown(batch, runID)

	var body bytes.Buffer
	if err := goldmark.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("report: render html: %w", err)
	}

	var doc strings.Builder
	doc.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&doc, "<title>jsopen report %s</title>", runID)
	doc.WriteString("<style>body{font-family:sans-serif;margin:2rem;}table{border-collapse:collapse;}td,th{border:1px solid #ccc;padding:4px 8px;}</style>")
	doc.WriteString("</head><body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("\n</body></html>\n")

	return doc.String(), nil
}
