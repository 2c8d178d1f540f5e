package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/dusk-indust/gedgraph/internal/gedcom"
)

// ProjectConfig holds project-level settings loaded from gedgraph.yml.
type ProjectConfig struct {
	// Charset forces a decoder by name, bypassing detection.
	Charset string `yaml:"charset,omitempty"`
	// ReplaceXRefs rewrites every cross-reference id on load.
	ReplaceXRefs bool `yaml:"replaceXrefs,omitempty"`
	// ContinueOnError keeps parsing past the first malformed line.
	ContinueOnError bool `yaml:"continueOnError,omitempty"`

	// Leniency widens the line grammar for known producer quirks.
	Leniency LeniencyConfig `yaml:"leniency,omitempty"`

	// GraphPath is the KuzuDB directory for the persistent graph. Empty
	// selects the in-memory store.
	GraphPath string `yaml:"graphPath,omitempty"`
	Verbose   bool   `yaml:"verbose,omitempty"`
}

// LeniencyConfig mirrors the tokenizer leniency flags.
type LeniencyConfig struct {
	Tabs             bool `yaml:"tabs,omitempty"`
	UnitSeparator    bool `yaml:"unitSeparator,omitempty"`
	ExtraDelimiters  bool `yaml:"extraDelimiters,omitempty"`
	UnterminatedXRef bool `yaml:"unterminatedXref,omitempty"`
	TagPunctuation   bool `yaml:"tagPunctuation,omitempty"`
}

// Load attempts to read gedgraph.yml or gedgraph.yaml from the given
// directory. Returns a zero-value config (not an error) if no config file
// exists.
func Load(dir string) (*ProjectConfig, error) {
	for _, name := range []string{"gedgraph.yml", "gedgraph.yaml"} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var cfg ProjectConfig
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}
	return &ProjectConfig{}, nil
}

// Options translates the config into decoder options.
func (c *ProjectConfig) Options() gedcom.Options {
	return gedcom.Options{
		AllowTabs:             c.Leniency.Tabs,
		AllowUnitSeparator:    c.Leniency.UnitSeparator,
		AllowExtraDelimiters:  c.Leniency.ExtraDelimiters,
		AllowUnterminatedXRef: c.Leniency.UnterminatedXRef,
		AllowTagPunctuation:   c.Leniency.TagPunctuation,
		ReplaceXRefs:          c.ReplaceXRefs,
		ContinueOnError:       c.ContinueOnError,
		Charset:               c.Charset,
	}
}
