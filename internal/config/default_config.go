package config

// LoadDefaultConfig returns the built-in default configuration, constructed
// directly rather than parsed from an embedded template file.
func LoadDefaultConfig() (*Config, error) {
	return DefaultConfig(), nil
}
