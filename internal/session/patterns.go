package session

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/solacehq/solace/pkg/types"
)

// patternSpec is the YAML shape for one preset. Durations are whole
// seconds; zero skips the phase.
type patternSpec struct {
	Name   string  `yaml:"name"`
	Label  string  `yaml:"label"`
	Inhale float64 `yaml:"inhale_seconds"`
	Hold1  float64 `yaml:"hold1_seconds"`
	Exhale float64 `yaml:"exhale_seconds"`
	Hold2  float64 `yaml:"hold2_seconds"`
}

type patternFile struct {
	Patterns []patternSpec `yaml:"patterns"`
}

// defaultPatternsYAML is the compiled-in preset list, overridable with a
// pattern file on disk.
const defaultPatternsYAML = `patterns:
  - name: simple
    label: Simple Breath
    inhale_seconds: 6
    exhale_seconds: 6
  - name: box
    label: Box Breathing
    inhale_seconds: 4
    hold1_seconds: 4
    exhale_seconds: 4
    hold2_seconds: 4
  - name: relaxing
    label: 4-7-8 Relaxing Breath
    inhale_seconds: 4
    hold1_seconds: 7
    exhale_seconds: 8
  - name: calming
    label: Extended Exhale
    inhale_seconds: 4
    exhale_seconds: 8
`

// DefaultPatterns returns the compiled-in presets.
func DefaultPatterns() []types.BreathingPattern {
	patterns, err := parsePatterns([]byte(defaultPatternsYAML))
	if err != nil {
		// The default YAML is a constant; a parse failure is a build bug.
		panic(fmt.Sprintf("default breathing patterns invalid: %v", err))
	}
	return patterns
}

// LoadPatterns reads presets from a YAML file, falling back to the
// defaults when path is empty.
func LoadPatterns(path string) ([]types.BreathingPattern, error) {
	if path == "" {
		return DefaultPatterns(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pattern file: %w", err)
	}
	return parsePatterns(data)
}

func parsePatterns(data []byte) ([]types.BreathingPattern, error) {
	var file patternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse pattern file: %w", err)
	}
	if len(file.Patterns) == 0 {
		return nil, fmt.Errorf("pattern file defines no patterns")
	}

	out := make([]types.BreathingPattern, 0, len(file.Patterns))
	for _, spec := range file.Patterns {
		if spec.Name == "" {
			return nil, fmt.Errorf("pattern without a name")
		}
		p := types.BreathingPattern{
			Name:   spec.Name,
			Label:  spec.Label,
			Inhale: secondsToDuration(spec.Inhale),
			Hold1:  secondsToDuration(spec.Hold1),
			Exhale: secondsToDuration(spec.Exhale),
			Hold2:  secondsToDuration(spec.Hold2),
		}
		if !p.Valid() {
			return nil, fmt.Errorf("pattern %q has no non-zero phase", spec.Name)
		}
		out = append(out, p)
	}
	return out, nil
}

// FindPattern returns the named pattern from the list.
func FindPattern(patterns []types.BreathingPattern, name string) (types.BreathingPattern, bool) {
	for _, p := range patterns {
		if p.Name == name {
			return p, true
		}
	}
	return types.BreathingPattern{}, false
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
