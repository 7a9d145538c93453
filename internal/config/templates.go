package config

// Strictness represents how aggressively the init wizard configures passes.
type Strictness string

const (
	StrictnessMinimal Strictness = "minimal"
	StrictnessStandard Strictness = "standard"
	StrictnessFull     Strictness = "full"
)

// GetFullConfigTemplate returns a documented YAML config template for the
// given strictness, written by `jsopen init`.
func GetFullConfigTemplate(strictness Strictness) string {
	allPasses := strictness != StrictnessMinimal
	flatten := strictness == StrictnessFull

	boolStr := func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	}

	return `# jsopen configuration
# https://github.com/ludo-technologies/jsopen

# Prefix used for freshly introduced temporary variable names (e.g. "_temp1", "_temp2", ...)
prefix: "_temp"

# Which transformation passes to run (they always run in this fixed order).
passes:
  unsequence: true
  respelling: true
  if_braces: ` + boolStr(allPasses) + `
  flatten_invoked: ` + boolStr(flatten) + `
  label_function_array: ` + boolStr(allPasses) + `

output:
  # text, json, diff, html
  format: "text"
  color: true

batch:
  # 0 = one worker per CPU
  concurrency: 0
  gitignore: true
  show_progress: true

analysis:
  include_patterns:
    - "**/*.js"
    - "**/*.jsx"
    - "**/*.mjs"
    - "**/*.cjs"
  exclude_patterns:
    - "node_modules"
    - "dist"
    - "build"
    - ".git"
    - "*.min.js"
  recursive: true
`
}

// GetMinimalConfigTemplate returns a terse config template with only the
// prefix and pass selection spelled out.
func GetMinimalConfigTemplate() string {
	return `prefix: "_temp"
passes:
  unsequence: true
  respelling: true
  if_braces: true
  flatten_invoked: false
  label_function_array: true
output:
  format: "text"
`
}
