package domain

import "context"

// ProgressManager tracks the progress of one or more long-running tasks,
// rendering a progress bar when attached to an interactive terminal and
// doing nothing otherwise.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	IsInteractive() bool
	Close()
}

// TaskProgress tracks a single task's progress toward its total.
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}

// ExecutableTask is one unit of work a ParallelExecutor can run concurrently
// with others, e.g. parsing and transforming a single file in a batch run.
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) (any, error)
}
