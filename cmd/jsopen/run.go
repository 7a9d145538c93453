package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ludo-technologies/jsopen/app"
	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
	"github.com/ludo-technologies/jsopen/service"
	"github.com/spf13/cobra"
)

var (
	runPrefix         string
	runDumpAST        bool
	runVerbose        bool
	runDiff           bool
	runReportPath     string
	runFormat         string
	runConfigPath     string
	runNoColor        bool
	runNoUnsequence   bool
	runNoRespelling   bool
	runNoIfBraces     bool
	runFlattenInvoked bool
	runNoLabelArrays  bool
)

func runCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [path...]",
		Short: "Deobfuscate JavaScript/TypeScript files",
		Long: `Parse, rewrite, and regenerate JavaScript/TypeScript source, splitting
comma expressions, statement-level short-circuits/ternaries, and
un-braced if/while/for bodies into equivalent, more readable forms.

Examples:
  jsopen run src/app.js                  # print the rewritten file
  jsopen run --diff src/app.js           # show a unified diff instead
  jsopen run --report out.md src/        # write a per-file change report
  jsopen run --flatten-invoked src/      # inline IIFEs even if the config disables it`,
		RunE: runRun,
	}

	cmd.Flags().StringVarP(&runPrefix, "prefix", "p", "",
		"Identifier prefix for introduced temporaries (default: from config, or _temp)")
	cmd.Flags().BoolVarP(&runDumpAST, "ast", "a", false,
		"Has no effect on output: run prints source text, a diff or a summary, never the AST")
	cmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false,
		"Print parse/transform/format progress to stderr")
	cmd.Flags().BoolVar(&runDiff, "diff", false,
		"Show a unified diff of original vs. deobfuscated source")
	cmd.Flags().StringVar(&runReportPath, "report", "",
		"Write a per-file change report to this path (.md or .html)")
	cmd.Flags().StringVarP(&runFormat, "format", "f", "",
		"Output format: text, json, diff (default: text, or diff when --diff is set)")
	cmd.Flags().StringVarP(&runConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&runNoColor, "no-color", false,
		"Disable ANSI color in diff output")
	cmd.Flags().BoolVar(&runNoUnsequence, "no-unsequence", false, "Disable the Unsequence pass")
	cmd.Flags().BoolVar(&runNoRespelling, "no-respelling", false, "Disable the Respelling pass")
	cmd.Flags().BoolVar(&runNoIfBraces, "no-if-braces", false, "Disable the IfBraces pass")
	cmd.Flags().BoolVar(&runFlattenInvoked, "flatten-invoked", false, "Enable the FlattenInvoked pass even when the config file disables it")
	cmd.Flags().BoolVar(&runNoLabelArrays, "no-label-function-array", false, "Disable the LabelFunctionArray pass")

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("no paths specified")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfigWithTarget(runConfigPath, args[0])
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	deobCfg := app.DefaultDeobfuscateConfig()
	deobCfg.Passes = domain.PassSelection{
		Unsequence:         cfg.Passes.Unsequence && !runNoUnsequence,
		Respelling:         cfg.Passes.Respelling && !runNoRespelling,
		IfBraces:           cfg.Passes.IfBraces && !runNoIfBraces,
		FlattenInvoked:     cfg.Passes.FlattenInvoked || runFlattenInvoked,
		LabelFunctionArray: cfg.Passes.LabelFunctionArray && !runNoLabelArrays,
	}
	deobCfg.Prefix = cfg.Prefix
	if runPrefix != "" {
		deobCfg.Prefix = runPrefix
	}
	deobCfg.Recursive = cfg.Analysis.Recursive
	deobCfg.IncludePatterns = cfg.Analysis.IncludePatterns
	deobCfg.ExcludePatterns = cfg.Analysis.ExcludePatterns
	deobCfg.DumpAST = runDumpAST
	deobCfg.Diff = runDiff || runFormat == string(domain.OutputFormatDiff)
	deobCfg.Report = runReportPath

	format := domain.OutputFormat(runFormat)
	if format == "" {
		format = domain.OutputFormatText
		if runDiff {
			format = domain.OutputFormatDiff
		}
	}
	deobCfg.OutputFormat = format

	batchCfg := &config.BatchConfig{
		Concurrency:  cfg.Batch.Concurrency,
		Gitignore:    cfg.Batch.Gitignore,
		ShowProgress: cfg.Batch.ShowProgress,
	}
	pm := service.NewProgressManager(batchCfg.ShowProgress && format != domain.OutputFormatJSON)
	defer pm.Close()

	if runVerbose {
		fmt.Fprintf(os.Stderr, "jsopen: parsing and transforming %v\n", args)
	}

	uc := app.NewDeobfuscateUseCase(batchCfg, pm)
	result, err := uc.Execute(ctx, deobCfg, args)
	if err != nil {
		return err
	}

	formatter := service.NewOutputFormatter()

	switch {
	case deobCfg.Diff:
		out := diffWriter()
		for _, d := range result.Diffs {
			if err := formatter.WriteDiff(&d, out); err != nil {
				return err
			}
		}
	case len(result.Batch.Files) == 1:
		if err := formatter.WriteTransformResult(&result.Batch.Files[0], format, os.Stdout); err != nil {
			return err
		}
	default:
		if err := formatter.WriteBatchResult(result.Batch, format, os.Stdout); err != nil {
			return err
		}
	}

	if result.Report != "" {
		fmt.Fprintf(os.Stderr, "jsopen: wrote report to %s (run %s)\n", result.Report, result.RunID)
	}

	if result.Batch.FailedFiles > 0 {
		return fmt.Errorf("%d of %d file(s) failed", result.Batch.FailedFiles, result.Batch.TotalFiles)
	}
	return nil
}

// plainWriter forwards to an io.Writer without exposing the underlying
// *os.File, so it never satisfies the formatter's isatty type assertion.
type plainWriter struct{ io.Writer }

// diffWriter returns the writer --diff output goes to. The formatter
// colorizes only when its writer is a *os.File connected to a terminal, so
// --no-color is honored by hiding stdout's concrete type rather than
// threading a color flag through WriteDiff.
func diffWriter() io.Writer {
	if runNoColor {
		return plainWriter{os.Stdout}
	}
	return os.Stdout
}
