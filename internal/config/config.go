// Package config carries build-time constants and the project-level
// Configuration, loadable from a YAML project file in the same spirit
// as the teacher's internal/ext reading funxy.yaml with
// gopkg.in/yaml.v3.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Version is the core compiler's version. Set at build time by a release
// script via -ldflags, following the teacher's own config.Version idiom.
var Version = "0.1.0"

// SourceFileExt is the default recognized source extension.
const SourceFileExt = ".src"

// SourceFileExtensions are all recognized source file extensions.
var SourceFileExtensions = []string{".src", ".eir-src"}

// HasSourceExt reports whether path ends with a recognized extension.
func HasSourceExt(path string) bool {
	for _, ext := range SourceFileExtensions {
		if len(path) >= len(ext) && path[len(path)-len(ext):] == ext {
			return true
		}
	}
	return false
}

// Configuration is the enumerated project configuration.
type Configuration struct {
	IncludePaths     []string          `yaml:"include_paths"`
	CodePaths        []string          `yaml:"code_paths"`
	Macros           map[string]string `yaml:"macros"`
	WarningsAsErrors bool              `yaml:"warnings_as_errors"`
	NoWarn           bool              `yaml:"no_warn"`
}

// Load reads a Configuration from a YAML project file.
func Load(path string) (*Configuration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Configuration
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a Configuration with no include/code paths and default
// diagnostic policy — the zero-config case a single-file compile uses.
func Default() *Configuration {
	return &Configuration{}
}
