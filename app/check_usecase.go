package app

import (
	"context"
	"fmt"
	"os"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/service"
)

// CheckUseCase orchestrates file collection and invariant checking for the
// `jsopen check` command.
type CheckUseCase struct {
	check      *service.CheckService
	fileHelper *FileHelper
}

// NewCheckUseCase creates a CheckUseCase.
func NewCheckUseCase() *CheckUseCase {
	return &CheckUseCase{
		check:      service.NewCheckService(),
		fileHelper: NewFileHelper(),
	}
}

// CheckConfig holds the options a `jsopen check` invocation needs.
type CheckConfig struct {
	Prefix string
	Passes domain.PassSelection

	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
}

// Execute collects JS/TS files under paths, transforms each in memory, and
// validates the result against the seven statically checkable
// deobfuscation invariants.
func (uc *CheckUseCase) Execute(_ context.Context, cfg CheckConfig, paths []string) (*domain.CheckResult, error) {
	files, err := ResolveFilePaths(uc.fileHelper, paths, cfg.Recursive, cfg.IncludePatterns, cfg.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("check: collect files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("check: no JavaScript/TypeScript files found in the specified paths")
	}

	sources := make(map[string][]byte, len(files))
	for _, path := range files {
		source, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("check: read %s: %w", path, err)
		}
		sources[path] = source
	}

	return uc.check.Check(files, sources, cfg.Prefix, cfg.Passes)
}
