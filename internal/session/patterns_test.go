package session

import (
	"testing"
	"time"
)

func TestDefaultPatterns(t *testing.T) {
	patterns := DefaultPatterns()
	if len(patterns) == 0 {
		t.Fatal("no default patterns")
	}
	for _, p := range patterns {
		if !p.Valid() {
			t.Fatalf("default pattern %q invalid", p.Name)
		}
	}

	simple, ok := FindPattern(patterns, "simple")
	if !ok {
		t.Fatal("simple pattern missing")
	}
	if simple.Inhale != 6*time.Second || simple.Exhale != 6*time.Second {
		t.Fatalf("simple pattern = %+v", simple)
	}
	if simple.Hold1 != 0 || simple.Hold2 != 0 {
		t.Fatal("simple pattern must skip both holds")
	}

	box, ok := FindPattern(patterns, "box")
	if !ok {
		t.Fatal("box pattern missing")
	}
	if box.CycleDuration() != 16*time.Second {
		t.Fatalf("box cycle = %v, want 16s", box.CycleDuration())
	}
}

func TestParsePatternsRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", "::"},
		{"empty list", "patterns: []"},
		{"nameless", "patterns:\n  - inhale_seconds: 4\n"},
		{"all zero", "patterns:\n  - name: flat\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parsePatterns([]byte(tc.yaml)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry[*BreathingSession](2)

	b1, err := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}
	id, err := r.Add(b1)
	if err != nil {
		t.Fatal(err)
	}

	got, err := r.Get(id)
	if err != nil || got != b1 {
		t.Fatalf("Get = %v, %v", got, err)
	}

	if _, err := r.Get("missing"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	b2, _ := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if _, err := r.Add(b2); err != nil {
		t.Fatal(err)
	}
	b3, _ := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if _, err := r.Add(b3); err != ErrTooManySessions {
		t.Fatalf("expected ErrTooManySessions, got %v", err)
	}

	r.Remove(id)
	if r.Len() != 1 {
		t.Fatalf("len = %d, want 1", r.Len())
	}
}
