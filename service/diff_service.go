package service

import (
	"fmt"
	"strings"

	godiff "github.com/sourcegraph/go-diff/diff"

	"github.com/ludo-technologies/jsopen/domain"
)

// DiffService renders a unified diff between a file's original source and
// its deobfuscated output. The example corpus only uses
// github.com/sourcegraph/go-diff to *parse* unified diffs it already has in
// hand, never to generate one from two strings, so generation here is a
// hand-rolled LCS line differ in that same style; the result is then run
// back through go-diff's parser to count hunks for the summary report,
// mirroring how the corpus itself draws the line between the two.
type DiffService struct{}

// NewDiffService creates a DiffService.
func NewDiffService() *DiffService {
	return &DiffService{}
}

// Diff returns the unified diff turning original into output, labeled with
// path in the standard a/ b/ header form.
func (s *DiffService) Diff(path, original, output string) *domain.DiffResult {
	oldLines := splitLines(original)
	newLines := splitLines(output)
	edits := computeEdits(oldLines, newLines)
	unified := formatUnifiedDiff(path, edits)

	result := &domain.DiffResult{Path: path, Diff: unified}
	if unified != "" {
		if fileDiffs, err := godiff.ParseMultiFileDiff([]byte(unified)); err == nil {
			for _, fd := range fileDiffs {
				result.HunkCount += len(fd.Hunks)
			}
		}
	}
	return result
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" && !strings.HasSuffix(content, "\n") {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type editKind int

const (
	editEqual editKind = iota
	editInsert
	editDelete
)

type editOp struct {
	kind    editKind
	oldLine int
	newLine int
	text    string
}

// computeEdits computes a line-level edit sequence via an LCS matrix. Source
// files run through this tool are single compilation units, not the
// multi-megabyte logs the large-file fallback in the reference
// implementation guards against, so no linear-memory fallback is needed here.
func computeEdits(oldLines, newLines []string) []editOp {
	m, n := len(oldLines), len(newLines)
	if m == 0 && n == 0 {
		return nil
	}

	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := m - 1; i >= 0; i-- {
		for j := n - 1; j >= 0; j-- {
			if oldLines[i] == newLines[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = maxInt(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	var edits []editOp
	i, j := 0, 0
	for i < m || j < n {
		switch {
		case i < m && j < n && oldLines[i] == newLines[j]:
			edits = append(edits, editOp{kind: editEqual, oldLine: i + 1, newLine: j + 1, text: oldLines[i]})
			i++
			j++
		case j < n && (i >= m || lcs[i][j+1] >= lcs[i+1][j]):
			edits = append(edits, editOp{kind: editInsert, newLine: j + 1, text: newLines[j]})
			j++
		default:
			edits = append(edits, editOp{kind: editDelete, oldLine: i + 1, text: oldLines[i]})
			i++
		}
	}
	return edits
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

const diffContextLines = 3

func formatUnifiedDiff(path string, edits []editOp) string {
	hunks := groupIntoHunks(edits, diffContextLines)
	if len(hunks) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("--- a/%s\n", path))
	sb.WriteString(fmt.Sprintf("+++ b/%s\n", path))
	for _, hunk := range hunks {
		sb.WriteString(hunk)
	}
	return sb.String()
}

func groupIntoHunks(edits []editOp, contextLines int) []string {
	if len(edits) == 0 {
		return nil
	}

	var hunks []string
	var hunkEdits []editOp
	hunkOpen := false

	flush := func() {
		if len(hunkEdits) == 0 {
			return
		}
		oldStart, oldCount, newStart, newCount := 0, 0, 0, 0
		for _, e := range hunkEdits {
			switch e.kind {
			case editEqual:
				if oldStart == 0 {
					oldStart = e.oldLine
				}
				if newStart == 0 {
					newStart = e.newLine
				}
				oldCount++
				newCount++
			case editDelete:
				if oldStart == 0 {
					oldStart = e.oldLine
				}
				oldCount++
			case editInsert:
				if newStart == 0 {
					newStart = e.newLine
				}
				newCount++
			}
		}
		if oldStart == 0 {
			oldStart = 1
		}
		if newStart == 0 {
			newStart = 1
		}

		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", oldStart, oldCount, newStart, newCount))
		for _, e := range hunkEdits {
			switch e.kind {
			case editEqual:
				sb.WriteString(" " + e.text + "\n")
			case editDelete:
				sb.WriteString("-" + e.text + "\n")
			case editInsert:
				sb.WriteString("+" + e.text + "\n")
			}
		}
		hunks = append(hunks, sb.String())
		hunkEdits = nil
	}

	for i, edit := range edits {
		if edit.kind != editEqual {
			if !hunkOpen {
				start := i - contextLines
				if start < 0 {
					start = 0
				}
				for j := start; j < i; j++ {
					if edits[j].kind == editEqual {
						hunkEdits = append(hunkEdits, edits[j])
					}
				}
			}
			hunkOpen = true
			hunkEdits = append(hunkEdits, edit)
			continue
		}

		if !hunkOpen {
			continue
		}

		remaining := len(edits) - i - 1
		lookahead := contextLines*2 + 1
		if lookahead > remaining+1 {
			lookahead = remaining + 1
		}
		hasMoreChanges := false
		for j := i + 1; j <= i+lookahead && j < len(edits); j++ {
			if edits[j].kind != editEqual {
				hasMoreChanges = true
				break
			}
		}

		if hasMoreChanges {
			hunkEdits = append(hunkEdits, edit)
			continue
		}

		added := 0
		for j := i; j < len(edits) && added < contextLines; j++ {
			if edits[j].kind == editEqual {
				hunkEdits = append(hunkEdits, edits[j])
				added++
			}
		}
		flush()
		hunkOpen = false
	}
	flush()

	return hunks
}
