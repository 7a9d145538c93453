package service

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
	"github.com/ludo-technologies/jsopen/internal/version"
)

// BatchService runs TransformService over many files in parallel, using a
// ParallelExecutorImpl for concurrency and progress reporting.
type BatchService struct {
	transform *TransformService
	executor  *ParallelExecutorImpl
}

// NewBatchService creates a BatchService bounded by cfg.Concurrency and
// reporting progress through pm (pass a NoOpProgressManager to disable it).
func NewBatchService(cfg *config.BatchConfig, pm domain.ProgressManager) *BatchService {
	return &BatchService{
		transform: NewTransformService(),
		executor:  NewParallelExecutorWithProgress(cfg, pm),
	}
}

// fileTask adapts one file's transform into a domain.ExecutableTask,
// writing its outcome into result (guarded by mu) rather than returning it,
// since ParallelExecutorImpl.Execute only aggregates errors.
type fileTask struct {
	path   string
	source []byte
	prefix string
	passes domain.PassSelection
	svc    *TransformService

	mu     *sync.Mutex
	result *[]domain.TransformResult
}

func (t *fileTask) Name() string     { return t.path }
func (t *fileTask) IsEnabled() bool  { return true }
func (t *fileTask) Execute(_ context.Context) (any, error) {
	res, err := t.svc.Run(domain.TransformRequest{
		Path:   t.path,
		Source: t.source,
		Prefix: t.prefix,
		Passes: t.passes,
	})
	if err != nil {
		res = &domain.TransformResult{Path: t.path, Err: err}
	}

	t.mu.Lock()
	*t.result = append(*t.result, *res)
	t.mu.Unlock()

	return nil, err
}

// Run reads and transforms every file in paths, returning a BatchResult
// with one TransformResult per file (order is completion order, not input
// order) plus aggregate counts. A per-file read or parse failure is
// recorded on that file's TransformResult.Err rather than aborting the run.
func (s *BatchService) Run(ctx context.Context, paths []string, prefix string, passes domain.PassSelection) (*domain.BatchResult, error) {
	start := time.Now()

	var mu sync.Mutex
	var results []domain.TransformResult

	tasks := make([]domain.ExecutableTask, 0, len(paths))
	for _, path := range paths {
		source, err := os.ReadFile(path)
		if err != nil {
			results = append(results, domain.TransformResult{Path: path, Err: err})
			continue
		}
		tasks = append(tasks, &fileTask{
			path: path, source: source, prefix: prefix, passes: passes,
			svc: s.transform, mu: &mu, result: &results,
		})
	}

	if err := s.executor.Execute(ctx, tasks); err != nil {
		// AggregatedError carries per-task failures already reflected in
		// each TransformResult.Err; the batch itself still completes.
		_ = err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	return &domain.BatchResult{
		Files:       results,
		TotalFiles:  len(paths),
		FailedFiles: failed,
		Duration:    time.Since(start).Milliseconds(),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.Version,
	}, nil
}
