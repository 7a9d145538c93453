package constants

// Tool name and related constants
const (
	// ToolName is the name of this tool
	ToolName = "jsopen"

	// ConfigFileName is the default config file name
	ConfigFileName = "jsopen.yaml"

	// EnvVarPrefix is the prefix for environment variables
	EnvVarPrefix = "JSOPEN"
)

// Pass name constants, matching the config.PassesConfig field names.
const (
	PassUnsequence        = "unsequence"
	PassRespelling        = "respelling"
	PassIfBraces          = "if_braces"
	PassFlattenInvoked    = "flatten_invoked"
	PassLabelFunctionArray = "label_function_array"
)

// Output format constants
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
	OutputFormatDiff = "diff"
	OutputFormatHTML = "html"
)

// DefaultTempPrefix is the identifier prefix used when none is configured.
const DefaultTempPrefix = "_temp"
