package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/solacehq/solace/pkg/types"
)

// A gateway without credentials must stay usable: structured operations
// yield their fallbacks and only chat refuses outright.
func TestDegradedGateway(t *testing.T) {
	ctx := context.Background()
	gw, err := NewGeminiGateway(ctx, GeminiConfig{})
	if err != nil {
		t.Fatalf("NewGeminiGateway failed: %v", err)
	}

	c, err := gw.Classify(ctx, "rough day", types.SourceJournal)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Classify error = %v, want ErrUnavailable", err)
	}
	if c == nil || c.PrimaryMood != types.MoodNeutral || c.Confidence != 0.3 {
		t.Errorf("Classify should return the fallback entry, got %+v", c)
	}

	if title := gw.GenerateTitle(ctx, "I had a hard week"); title != "I had a hard week" {
		t.Errorf("GenerateTitle fallback = %q", title)
	}

	plan := gw.GeneratePlan(ctx, MoodPattern{DominantMood: types.MoodAnxious})
	if plan == nil || len(plan.Exercises) < 2 {
		t.Errorf("GeneratePlan should return the anxious template, got %+v", plan)
	}

	if _, err := gw.StartChat(ctx, nil); !errors.Is(err, ErrUnavailable) {
		t.Errorf("StartChat error = %v, want ErrUnavailable", err)
	}

	if gw.Embedder("") != nil {
		t.Error("degraded gateway must not hand out an embedder")
	}
}

func TestBreakerTripsAfterConsecutiveFailures(t *testing.T) {
	b := NewBreaker()
	ctx := context.Background()
	boom := errors.New("boom")

	for i := 0; i < 3; i++ {
		_, err := b.Execute(ctx, func() (interface{}, error) { return nil, boom })
		if !errors.Is(err, boom) {
			t.Fatalf("call %d: err = %v, want boom", i, err)
		}
	}

	if b.State() != "open" {
		t.Fatalf("State = %q, want open after 3 consecutive failures", b.State())
	}

	_, err := b.Execute(ctx, func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, ErrCircuitOpen) {
		t.Errorf("open circuit should reject with ErrCircuitOpen, got %v", err)
	}

	m := b.Metrics()
	if m.TotalFailures < 3 {
		t.Errorf("TotalFailures = %d, want >= 3", m.TotalFailures)
	}
}

func TestBreakerRejectsCancelledContext(t *testing.T) {
	b := NewBreaker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Execute(ctx, func() (interface{}, error) { return "ok", nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
