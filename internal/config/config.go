package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Default transform settings
const (
	// DefaultPrefix is the identifier prefix used for freshly introduced
	// temporary variables when no prefix is configured.
	DefaultPrefix = "_temp"

	// DefaultConcurrency is the number of files processed in parallel when
	// batch.concurrency is left at zero.
	DefaultConcurrency = 0
)

// Config represents the main configuration structure for jsopen.
type Config struct {
	// Prefix is the identifier prefix used for fresh temporary names
	// introduced by the Unsequence pass.
	Prefix string `json:"prefix" mapstructure:"prefix" yaml:"prefix"`

	// Passes controls which transformation passes run; their order is fixed.
	Passes PassesConfig `json:"passes" mapstructure:"passes" yaml:"passes"`

	// Output holds output formatting configuration.
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`

	// Batch holds configuration for multi-file batch processing.
	Batch BatchConfig `json:"batch" mapstructure:"batch" yaml:"batch"`

	// Analysis holds general file-selection configuration.
	Analysis AnalysisConfig `json:"analysis,omitempty" mapstructure:"analysis" yaml:"analysis"`
}

// PassesConfig controls which transformation passes run. Every field
// defaults to true; setting one to false skips that pass entirely, leaving
// the AST it would have touched untouched by later passes.
type PassesConfig struct {
	Unsequence        bool `json:"unsequence" mapstructure:"unsequence" yaml:"unsequence"`
	Respelling        bool `json:"respelling" mapstructure:"respelling" yaml:"respelling"`
	IfBraces          bool `json:"if_braces" mapstructure:"if_braces" yaml:"if_braces"`
	FlattenInvoked    bool `json:"flatten_invoked" mapstructure:"flatten_invoked" yaml:"flatten_invoked"`
	LabelFunctionArray bool `json:"label_function_array" mapstructure:"label_function_array" yaml:"label_function_array"`
}

// OutputConfig holds configuration for output formatting. Its values are
// loaded and Format is validated, but no command reads them: jsopen run
// takes its format from --format/--diff, colors diffs only on a terminal
// (see --no-color), and prints rewritten sources to stdout without writing
// any file.
type OutputConfig struct {
	// Format names an output format: text, json, diff, html
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// Color records whether ANSI color is wanted in terminal output.
	Color bool `json:"color" mapstructure:"color" yaml:"color"`

	// Directory names a directory for batch output.
	Directory string `json:"directory" mapstructure:"directory" yaml:"directory"`
}

// BatchConfig holds configuration for multi-file batch processing.
type BatchConfig struct {
	// Concurrency is the number of files processed in parallel.
	// 0 means runtime.NumCPU().
	Concurrency int `json:"concurrency" mapstructure:"concurrency" yaml:"concurrency"`

	// Gitignore is loaded but not consulted: recursive directory
	// collection always honors a .gitignore at the root of each directory
	// argument, whatever this is set to.
	Gitignore bool `json:"gitignore" mapstructure:"gitignore" yaml:"gitignore"`

	// ShowProgress controls whether a progress bar is rendered during
	// batch runs (auto-disabled for non-TTY output).
	ShowProgress bool `json:"show_progress" mapstructure:"show_progress" yaml:"show_progress"`
}

// AnalysisConfig holds general file-selection configuration.
type AnalysisConfig struct {
	IncludePatterns []string `json:"include_patterns" mapstructure:"include_patterns" yaml:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns" mapstructure:"exclude_patterns" yaml:"exclude_patterns"`
	Recursive       bool     `json:"recursive" mapstructure:"recursive" yaml:"recursive"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Prefix: DefaultPrefix,
		Passes: PassesConfig{
			Unsequence:         true,
			Respelling:         true,
			IfBraces:           true,
			FlattenInvoked:     true,
			LabelFunctionArray: true,
		},
		Output: OutputConfig{
			Format: "text",
			Color:  true,
		},
		Batch: BatchConfig{
			Concurrency:  DefaultConcurrency,
			Gitignore:    true,
			ShowProgress: true,
		},
		Analysis: AnalysisConfig{
			IncludePatterns: []string{
				"**/*.js", "**/*.jsx", "**/*.mjs", "**/*.cjs",
			},
			ExcludePatterns: []string{
				"node_modules",
				"dist",
				"build",
				".git",
				"*.min.js",
			},
			Recursive: true,
		},
	}
}

// LoadConfig loads configuration from file or returns the default config.
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context,
// discovering a config file near targetPath when configPath is empty.
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file.
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// A fresh viper instance avoids cross-test state bleed.
	v := viper.New()
	cfg := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory.
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for a jsopen config file in targetPath's directory
// and its ancestors, then falls back to the current directory,
// $HOME/.config/jsopen, and finally the file named by $JSOPEN_CONFIG.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"jsopen.yaml",
		"jsopen.yml",
		".jsopen.yaml",
		".jsopen.yml",
		"jsopen.json",
		".jsopen.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, statErr := os.Stat(absPath)
			if statErr == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if cfgPath := searchConfigInDirectory(dir, candidates); cfgPath != "" {
					return cfgPath
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if cfgPath := searchConfigInDirectory(".", candidates); cfgPath != "" {
		return cfgPath
	}

	if home, err := os.UserHomeDir(); err == nil {
		if cfgPath := searchConfigInDirectory(filepath.Join(home, ".config", "jsopen"), candidates); cfgPath != "" {
			return cfgPath
		}
	}

	if envConfig := os.Getenv("JSOPEN_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values.
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return fmt.Errorf("prefix must not be empty")
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"diff": true,
		"html": true,
	}
	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, diff, html", c.Output.Format)
	}

	if c.Batch.Concurrency < 0 {
		return fmt.Errorf("batch.concurrency must be >= 0, got %d", c.Batch.Concurrency)
	}

	if len(c.Analysis.IncludePatterns) == 0 {
		return fmt.Errorf("analysis.include_patterns cannot be empty")
	}

	return nil
}

// SaveConfig saves configuration to a YAML file.
func SaveConfig(cfg *Config, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("prefix", cfg.Prefix)
	v.Set("passes", cfg.Passes)
	v.Set("output", cfg.Output)
	v.Set("batch", cfg.Batch)
	v.Set("analysis", cfg.Analysis)

	return v.WriteConfig()
}
