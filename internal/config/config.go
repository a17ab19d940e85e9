// Package config loads the CLI's optional settings file. Djerba the
// language has no config surface of its own; this is host-side plumbing
// for the djerba binary.
package config

import (
	"os"

	"github.com/goccy/go-yaml"
)

// Config is the shape of djerba.yaml / the --config flag's target file.
type Config struct {
	// Trace, when true, makes the CLI print a line to stderr before and
	// after executing, same as the --trace flag.
	Trace bool `yaml:"trace"`
	// ShowNameErrorContext controls whether a NameError's source-line
	// caret context is printed, or just the bare message.
	ShowNameErrorContext bool `yaml:"showNameErrorContext"`
	// InputStream and OutputStream name the host streams input()/Print
	// bind to; "stdin"/"stdout" are the only values actually wired by the
	// CLI today, but the field exists so a future host embedding can
	// redirect them from a settings file instead of code.
	InputStream  string `yaml:"inputStream"`
	OutputStream string `yaml:"outputStream"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		ShowNameErrorContext: true,
		InputStream:          "stdin",
		OutputStream:         "stdout",
	}
}

// Load reads and parses a YAML config file at path, starting from
// Default() so an omitted field keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
