// ABOUTME: YAML-backed settings for the lattice viewer: label normalization, default
// ABOUTME: non-word list location, and rendering knobs (colors, sizes, weight factor).
package settings

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Colors maps each state type to a graphviz color name or hex value.
type Colors struct {
	Initial      string `yaml:"initial"`
	Final        string `yaml:"final"`
	Goal         string `yaml:"goal"`
	Intermediate string `yaml:"intermediate"`
}

// Render holds the knobs that shape DOT output.
type Render struct {
	// RankDir is the graphviz rank direction for the whole lattice.
	RankDir string `yaml:"rankdir"`
	// WeightFactor scales edge pen widths derived from transition weights.
	WeightFactor float64 `yaml:"weight_factor"`
	// MinStateSize is the smallest node size in points.
	MinStateSize int `yaml:"min_state_size"`
	// StateSizeMultiplier scales node size with out-degree.
	StateSizeMultiplier float64 `yaml:"state_size_multiplier"`
	Colors              Colors  `yaml:"colors"`
}

// Settings is the full viewer configuration.
type Settings struct {
	// LowercaseLabels normalizes output symbols to lower case while parsing.
	LowercaseLabels bool `yaml:"lowercase_labels"`
	// NonwordsFile is the default non-word label list, overridable on the
	// command line. Empty means no list is configured.
	NonwordsFile string `yaml:"nonwords_file"`
	Render       Render `yaml:"render"`
}

// Default returns the built-in settings: the historical viewer constants.
func Default() Settings {
	return Settings{
		LowercaseLabels: true,
		Render: Render{
			RankDir:             "LR",
			WeightFactor:        2.0,
			MinStateSize:        1,
			StateSizeMultiplier: 5.0,
			Colors: Colors{
				Initial:      "cyan",
				Final:        "magenta",
				Goal:         "red",
				Intermediate: "green",
			},
		},
	}
}

// ParseError marks a settings file that could not be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing settings %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Load reads a YAML settings file overlaid on the defaults. An empty path
// returns the defaults unchanged; a missing or malformed file is an error.
func Load(path string) (Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, &ParseError{Path: path, Err: err}
	}
	return s, nil
}
