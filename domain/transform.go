package domain

// TransformRequest describes a single-file deobfuscation run.
type TransformRequest struct {
	Path           string
	Source         []byte
	Prefix         string
	Passes         PassSelection
	DumpAST        bool
}

// PassSelection mirrors config.PassesConfig at the service boundary, so
// service/app code never needs to import internal/config directly.
type PassSelection struct {
	Unsequence         bool
	Respelling         bool
	IfBraces           bool
	FlattenInvoked     bool
	LabelFunctionArray bool
}

// PassStats counts rewrites performed against a single file, used by
// ReportService to render a per-file summary table. TransformService fills
// in SequencesEliminated, TernariesConverted and IIFEsFlattened from
// before/after node counts; BracesAdded and ArrayFunctionsNamed are not
// filled in and stay zero.
type PassStats struct {
	SequencesEliminated int
	TernariesConverted  int
	BracesAdded         int
	IIFEsFlattened      int
	ArrayFunctionsNamed int
}

// TransformResult is the outcome of deobfuscating one file.
type TransformResult struct {
	Path     string `json:"path"`
	Original string `json:"-"`
	Output   string `json:"output"`
	AST      string `json:"ast,omitempty"`
	Stats    PassStats `json:"stats"`
	Err      error  `json:"-"`
}

// BatchResult aggregates TransformResults across every file a batch run
// processed, in the order each worker finished (not necessarily input order).
type BatchResult struct {
	Files       []TransformResult `json:"files"`
	TotalFiles  int               `json:"total_files"`
	FailedFiles int               `json:"failed_files"`
	Duration    int64             `json:"duration_ms"`
	GeneratedAt string            `json:"generated_at"`
	Version     string            `json:"version"`
}

// DiffResult is a unified diff between a file's original and deobfuscated
// source.
type DiffResult struct {
	Path      string `json:"path"`
	Diff      string `json:"diff"`
	HunkCount int    `json:"hunk_count"`
}
