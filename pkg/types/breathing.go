package types

import "time"

// BreathingPattern names the four phase durations of a guided-breathing
// cycle. A zero duration means the phase is skipped entirely.
type BreathingPattern struct {
	Name   string        `json:"name" yaml:"name"`
	Label  string        `json:"label" yaml:"label"`
	Inhale time.Duration `json:"inhale" yaml:"inhale"`
	Hold1  time.Duration `json:"hold1" yaml:"hold1"`
	Exhale time.Duration `json:"exhale" yaml:"exhale"`
	Hold2  time.Duration `json:"hold2" yaml:"hold2"`
}

// CycleDuration is the total wall-clock length of one full cycle.
func (p BreathingPattern) CycleDuration() time.Duration {
	return p.Inhale + p.Hold1 + p.Exhale + p.Hold2
}

// Valid reports whether the pattern can run at all: at least one phase
// must have a non-zero duration, otherwise phase advancement would spin.
func (p BreathingPattern) Valid() bool {
	return p.CycleDuration() > 0
}
