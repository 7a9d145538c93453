package service

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/ludo-technologies/jsopen/domain"
)

// OutputFormatterImpl renders TransformResult/BatchResult/CheckResult/
// DiffResult values in the formats the CLI exposes through --format, one
// Write* method per result type.
type OutputFormatterImpl struct{}

// NewOutputFormatter creates an OutputFormatterImpl.
func NewOutputFormatter() *OutputFormatterImpl {
	return &OutputFormatterImpl{}
}

// WriteJSON writes data as indented JSON to writer.
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// WriteYAML writes data as YAML to writer.
func WriteYAML(writer io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(writer)
	defer encoder.Close()
	return encoder.Encode(data)
}

// WriteTransformResult renders a single-file run in format.
func (f *OutputFormatterImpl) WriteTransformResult(result *domain.TransformResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText, "":
		_, err := fmt.Fprint(writer, result.Output)
		return err
	default:
		return fmt.Errorf("output: unsupported format %q for transform result", format)
	}
}

// WriteBatchResult renders a batch run's summary in format.
func (f *OutputFormatterImpl) WriteBatchResult(result *domain.BatchResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText, "":
		return f.writeBatchText(result, writer)
	default:
		return fmt.Errorf("output: unsupported format %q for batch result", format)
	}
}

func (f *OutputFormatterImpl) writeBatchText(result *domain.BatchResult, writer io.Writer) error {
	fmt.Fprintf(writer, "processed %d file(s), %d failed, %dms\n",
		result.TotalFiles, result.FailedFiles, result.Duration)
	for _, file := range result.Files {
		if file.Err != nil {
			fmt.Fprintf(writer, "  %s: error: %v\n", file.Path, file.Err)
			continue
		}
		fmt.Fprintf(writer, "  %s: %d sequences, %d ternaries, %d IIFEs, %d array fns\n",
			file.Path, file.Stats.SequencesEliminated, file.Stats.TernariesConverted,
			file.Stats.IIFEsFlattened, file.Stats.ArrayFunctionsNamed)
	}
	return nil
}

// WriteCheckResult renders an invariant-check run in format.
func (f *OutputFormatterImpl) WriteCheckResult(result *domain.CheckResult, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, result)
	case domain.OutputFormatText, "":
		return f.writeCheckText(result, writer)
	default:
		return fmt.Errorf("output: unsupported format %q for check result", format)
	}
}

func (f *OutputFormatterImpl) writeCheckText(result *domain.CheckResult, writer io.Writer) error {
	status := "PASS"
	if !result.Passed {
		status = "FAIL"
	}
	fmt.Fprintf(writer, "%s (%d file(s) checked, %d violation(s), %dms)\n",
		status, result.Summary.FilesChecked, result.Summary.TotalViolations, result.Duration)
	for _, v := range result.Violations {
		loc := v.File
		if v.Location != "" {
			loc += ":" + v.Location
		}
		fmt.Fprintf(writer, "  [%s] %s: %s (%s)\n", v.Severity, loc, v.Message, v.Rule)
	}
	return nil
}

// WriteDiff renders a unified diff to writer, colorizing +/- lines with ANSI
// codes when writer is an interactive terminal (go-isatty-gated, per
// jsopen's --diff output).
func (f *OutputFormatterImpl) WriteDiff(result *domain.DiffResult, writer io.Writer) error {
	if !shouldColorize(writer) {
		_, err := io.WriteString(writer, result.Diff)
		return err
	}

	for _, line := range strings.SplitAfter(result.Diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "+++"):
			fmt.Fprint(writer, "\x1b[32m"+line+"\x1b[0m")
		case strings.HasPrefix(line, "-") && !strings.HasPrefix(line, "---"):
			fmt.Fprint(writer, "\x1b[31m"+line+"\x1b[0m")
		case strings.HasPrefix(line, "@@"):
			fmt.Fprint(writer, "\x1b[36m"+line+"\x1b[0m")
		default:
			fmt.Fprint(writer, line)
		}
	}
	return nil
}

func shouldColorize(writer io.Writer) bool {
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
