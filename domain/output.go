package domain

// OutputFormat selects how jsopen run/check renders results.
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatDiff OutputFormat = "diff"
	OutputFormatHTML OutputFormat = "html"
)
