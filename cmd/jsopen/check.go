package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ludo-technologies/jsopen/app"
	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/config"
	"github.com/spf13/cobra"
)

// CheckExitError carries the exit code a check command failure should
// produce, distinct from parse/IO errors which always exit 2.
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkPrefix     string
	checkVerbose    bool
	checkJSON       bool
	checkConfigPath string
	checkNoUnsequence   bool
	checkNoRespelling   bool
	checkNoIfBraces     bool
	checkFlattenInvoked bool
	checkNoLabelArrays  bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Verify files satisfy the deobfuscation invariants",
		Long: `Transform each file in memory and validate the result against the
deobfuscator's invariants: no leftover comma expressions, no
statement-level short-circuits or ternaries, single-declarator var
statements, braced control-flow bodies, respelled booleans/undefined,
unique fresh names, and idempotence under a second transform pass.
Intended for CI/CD pipelines.

Exit codes:
  0 - All checks pass
  1 - One or more invariants violated
  2 - Error collecting or parsing files

Examples:
  jsopen check src/
  jsopen check --prefix _tmp --json src/`,
		RunE:          runCheckCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().StringVarP(&checkPrefix, "prefix", "p", "",
		"Identifier prefix fresh names must match (default: from config, or _temp)")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show each violation's location")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&checkNoUnsequence, "no-unsequence", false, "Skip the Unsequence pass (its invariants are still checked)")
	cmd.Flags().BoolVar(&checkNoRespelling, "no-respelling", false, "Skip the Respelling pass (its invariant is still checked)")
	cmd.Flags().BoolVar(&checkNoIfBraces, "no-if-braces", false, "Skip the IfBraces pass (its invariant is still checked)")
	cmd.Flags().BoolVar(&checkFlattenInvoked, "flatten-invoked", false, "Run the FlattenInvoked pass even when the config file disables it")
	cmd.Flags().BoolVar(&checkNoLabelArrays, "no-label-function-array", false, "Skip the LabelFunctionArray pass")

	return cmd
}

func runCheckCmd(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return &CheckExitError{Code: 2, Message: "no paths specified"}
	}

	cfg, err := config.LoadConfigWithTarget(checkConfigPath, args[0])
	if err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to load configuration: %v", err)}
	}

	prefix := cfg.Prefix
	if checkPrefix != "" {
		prefix = checkPrefix
	}

	ccfg := app.CheckConfig{
		Prefix: prefix,
		Passes: domain.PassSelection{
			Unsequence:         cfg.Passes.Unsequence && !checkNoUnsequence,
			Respelling:         cfg.Passes.Respelling && !checkNoRespelling,
			IfBraces:           cfg.Passes.IfBraces && !checkNoIfBraces,
			FlattenInvoked:     cfg.Passes.FlattenInvoked || checkFlattenInvoked,
			LabelFunctionArray: cfg.Passes.LabelFunctionArray && !checkNoLabelArrays,
		},
		Recursive:       cfg.Analysis.Recursive,
		IncludePatterns: cfg.Analysis.IncludePatterns,
		ExcludePatterns: cfg.Analysis.ExcludePatterns,
	}

	uc := app.NewCheckUseCase()
	result, err := uc.Execute(context.Background(), ccfg, args)
	if err != nil {
		return &CheckExitError{Code: 2, Message: err.Error()}
	}

	return outputCheckResult(result)
}

func outputCheckResult(result *domain.CheckResult) error {
	if checkJSON {
		return outputCheckJSON(result)
	}
	return outputCheckText(result)
}

func outputCheckText(result *domain.CheckResult) error {
	if result.Passed {
		fmt.Println("PASS: all invariants hold")
		if checkVerbose {
			fmt.Printf("  Files checked: %d\n", result.Summary.FilesChecked)
			fmt.Printf("  Duration: %dms\n", result.Duration)
		}
		return nil
	}

	fmt.Println("FAIL: invariant violations found")
	fmt.Printf("  Violations: %d\n", result.Summary.TotalViolations)

	for _, v := range result.Violations {
		severity := "ERROR"
		if v.Severity == "warning" {
			severity = "WARN"
		}
		fmt.Printf("  [%s] %s: %s\n", severity, v.Category, v.Message)
		if checkVerbose && v.Location != "" {
			fmt.Printf("         at %s:%s\n", v.File, v.Location)
		}
	}

	if checkVerbose {
		fmt.Printf("\nSummary:\n")
		fmt.Printf("  Files: %d\n", result.Summary.FilesChecked)
		fmt.Printf("  Sequence findings: %d\n", result.Summary.SequenceFindings)
		fmt.Printf("  Brace findings: %d\n", result.Summary.BraceFindings)
		fmt.Printf("  Declarator findings: %d\n", result.Summary.DeclaratorCount)
		fmt.Printf("  Respelling findings: %d\n", result.Summary.RespellingCount)
		fmt.Printf("  Fresh-name findings: %d\n", result.Summary.FreshNameCount)
		fmt.Printf("  Idempotence findings: %d\n", result.Summary.IdempotenceCount)
		fmt.Printf("  Duration: %dms\n", result.Duration)
	}

	return &CheckExitError{Code: 1, Message: ""}
}

func outputCheckJSON(result *domain.CheckResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return &CheckExitError{Code: 2, Message: fmt.Sprintf("failed to encode JSON: %v", err)}
	}
	if !result.Passed {
		return &CheckExitError{Code: 1, Message: ""}
	}
	return nil
}
