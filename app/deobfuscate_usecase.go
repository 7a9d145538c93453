package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
	"github.com/ludo-technologies/jsopen/service"
)

// DeobfuscateConfig holds the options a `jsopen run` invocation needs:
// which passes to apply, and how to surface the result (raw output, a
// diff, a written report).
type DeobfuscateConfig struct {
	Prefix string
	Passes domain.PassSelection

	DumpAST bool
	Diff    bool
	Report  string // output path for --report; extension selects md vs html

	OutputFormat domain.OutputFormat

	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	Batch config.BatchConfig
}

// DefaultDeobfuscateConfig returns the default run configuration: every
// pass except FlattenInvoked enabled, text output, recursive file
// collection, matching transform.DefaultOptions.
func DefaultDeobfuscateConfig() DeobfuscateConfig {
	return DeobfuscateConfig{
		Prefix: "_temp",
		Passes: domain.PassSelection{
			Unsequence:         true,
			Respelling:         true,
			IfBraces:           true,
			FlattenInvoked:     false,
			LabelFunctionArray: true,
		},
		OutputFormat: domain.OutputFormatText,
		Recursive:    true,
	}
}

// DeobfuscateUseCase orchestrates file collection, batch transformation,
// and optional diff/report rendering for the `jsopen run` command.
type DeobfuscateUseCase struct {
	batch      *service.BatchService
	diff       *service.DiffService
	report     *service.ReportService
	fileHelper *FileHelper
}

// NewDeobfuscateUseCase creates a DeobfuscateUseCase. pm may be a
// NoOpProgressManager to disable progress bars.
func NewDeobfuscateUseCase(cfg *config.BatchConfig, pm domain.ProgressManager) *DeobfuscateUseCase {
	return &DeobfuscateUseCase{
		batch:      service.NewBatchService(cfg, pm),
		diff:       service.NewDiffService(),
		report:     service.NewReportService(),
		fileHelper: NewFileHelper(),
	}
}

// DeobfuscateResult holds everything a `jsopen run` invocation produced.
type DeobfuscateResult struct {
	Batch   *domain.BatchResult
	Diffs   []domain.DiffResult
	Report  string
	RunID   string
}

// Execute collects JS/TS files under paths, transforms each, and optionally
// computes diffs and renders a report.
func (uc *DeobfuscateUseCase) Execute(ctx context.Context, cfg DeobfuscateConfig, paths []string) (*DeobfuscateResult, error) {
	files, err := ResolveFilePaths(uc.fileHelper, paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("deobfuscate: collect files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("deobfuscate: no JavaScript/TypeScript files found in the specified paths")
	}

	batchResult, err := uc.batch.Run(ctx, files, cfg.Prefix, cfg.Passes)
	if err != nil {
		return nil, fmt.Errorf("deobfuscate: batch run: %w", err)
	}

	result := &DeobfuscateResult{Batch: batchResult}

	if cfg.Diff {
		for _, file := range batchResult.Files {
			if file.Err != nil {
				continue
			}
			result.Diffs = append(result.Diffs, *uc.diff.Diff(file.Path, file.Original, file.Output))
		}
	}

	if cfg.Report != "" {
		runID := uc.report.RunID()
		result.RunID = runID

		var rendered string
		if hasSuffix(cfg.Report, ".html") {
			rendered, err = uc.report.HTML(batchResult, runID)
			if err != nil {
				return nil, fmt.Errorf("deobfuscate: render report: %w", err)
			}
		} else {
			rendered = uc.report.Markdown(batchResult, runID)
		}
		if err := os.WriteFile(cfg.Report, []byte(rendered), 0o644); err != nil {
			return nil, fmt.Errorf("deobfuscate: write report %s: %w", cfg.Report, err)
		}
		result.Report = cfg.Report
	}

	return result, nil
}

func hasSuffix(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}
