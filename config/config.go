package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the declaration extractor.
type Config struct {
	Index   IndexConfig   `yaml:"index"`
	Parser  ParserConfig  `yaml:"parser"`
	Macros  MacroConfig   `yaml:"macros"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig holds file discovery configuration.
type IndexConfig struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

// ParserConfig holds extraction configuration.
type ParserConfig struct {
	MaxDepth       int  `yaml:"max_depth"`
	AttachComments bool `yaml:"attach_comments"`
}

// MacroConfig lists the reflection macros the extractor recognizes.
// Declaration macros annotate the declaration that follows; body macros
// appear inside a class body and attach to the enclosing class.
type MacroConfig struct {
	Declaration []string `yaml:"declaration"`
	Body        []string `yaml:"body"`
}

// OutputConfig holds output configuration.
type OutputConfig struct {
	Format string `yaml:"format"` // "json" or "text"
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Index: IndexConfig{
			Includes: []string{"**/*.h", "**/*.hpp", "**/*.hh", "**/*.cpp", "**/*.cc", "**/*.cxx"},
			Excludes: []string{"**/build/**", "**/Intermediate/**", "**/ThirdParty/**", "**/.git/**"},
		},
		Parser: ParserConfig{
			MaxDepth:       64,
			AttachComments: true,
		},
		Macros: MacroConfig{
			Declaration: []string{"UCLASS", "USTRUCT", "UINTERFACE", "UENUM", "UPROPERTY", "UFUNCTION"},
			Body:        []string{"GENERATED_BODY", "GENERATED_UCLASS_BODY", "GENERATED_USTRUCT_BODY"},
		},
		Output: OutputConfig{
			Format: "json",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for declex.yaml).
func LoadFromDir(dir string) (*Config, error) {
	// Try declex.yaml in the directory
	path := filepath.Join(dir, "declex.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Try .declex/config.yaml
	path = filepath.Join(dir, ".declex", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	// Return defaults
	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// IndexDBPath returns the path to the symbol database.
func IndexDBPath(dir string) string {
	return filepath.Join(dir, ".declex", "symbols.db")
}

// EnsureWorkDir ensures the .declex directory exists.
func EnsureWorkDir(dir string) error {
	workDir := filepath.Join(dir, ".declex")
	return os.MkdirAll(workDir, 0755)
}
