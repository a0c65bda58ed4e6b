package session

import (
	"testing"
	"time"

	"github.com/solacehq/solace/pkg/types"
)

func simplePattern() types.BreathingPattern {
	return types.BreathingPattern{Name: "simple", Inhale: 6 * time.Second, Exhale: 6 * time.Second}
}

// drive advances the session in 100ms ticks for the given wall time.
func drive(b *BreathingSession, d time.Duration) {
	tick := 100 * time.Millisecond
	for elapsed := time.Duration(0); elapsed < d; elapsed += tick {
		b.Advance(tick)
	}
}

func TestBreathingRejectsAllZeroPattern(t *testing.T) {
	_, err := NewBreathingSession(types.BreathingPattern{Name: "flat"}, 30*time.Second, 0)
	if err != ErrInvalidPattern {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestBreathingSkipsZeroPhases(t *testing.T) {
	pattern := types.BreathingPattern{Name: "skip", Inhale: 4 * time.Second, Exhale: 4 * time.Second}
	b, err := NewBreathingSession(pattern, time.Minute, 0)
	if err != nil {
		t.Fatal(err)
	}

	var visited []Phase
	b.OnTick = func(snap BreathingSnapshot) {
		if len(visited) == 0 || visited[len(visited)-1] != snap.Phase {
			visited = append(visited, snap.Phase)
		}
	}

	b.Start()
	drive(b, 17*time.Second)

	for _, p := range visited {
		if p == PhaseHold1 || p == PhaseHold2 {
			t.Fatalf("entered zero-duration phase %s", p)
		}
	}
	want := []Phase{PhaseInhale, PhaseExhale, PhaseInhale, PhaseExhale, PhaseInhale}
	if len(visited) != len(want) {
		t.Fatalf("phase sequence %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("phase sequence %v, want %v", visited, want)
		}
	}
}

func TestBreathingCompletionAndCycleCount(t *testing.T) {
	b, err := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	b.Start()
	drive(b, 30*time.Second)

	snap := b.Snapshot()
	if snap.RunState != RunComplete {
		t.Fatalf("run state %s, want complete", snap.RunState)
	}
	// 30s over a 12s cycle: two full cycles, the third discarded.
	if snap.Cycles != 2 {
		t.Fatalf("cycles = %d, want 2", snap.Cycles)
	}
	if snap.ElapsedTotal != 30*time.Second {
		t.Fatalf("elapsed total %v, want 30s", snap.ElapsedTotal)
	}
}

func TestBreathingCompletionFiresExactlyOnce(t *testing.T) {
	b, err := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	var completions int
	b.OnTick = func(snap BreathingSnapshot) {
		if snap.RunState == RunComplete {
			completions++
		}
	}

	b.Start()
	drive(b, 35*time.Second) // overshoot; ticks after completion are ignored

	if completions != 1 {
		t.Fatalf("completion emitted %d times, want 1", completions)
	}
}

func TestBreathingPauseFreezesCounters(t *testing.T) {
	b, err := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	b.Start()
	drive(b, 3*time.Second)
	b.Pause()

	before := b.Snapshot()
	drive(b, 5*time.Second)
	after := b.Snapshot()

	if after.ElapsedTotal != before.ElapsedTotal || after.ElapsedInPhase != before.ElapsedInPhase {
		t.Fatal("counters moved while paused")
	}

	b.Resume()
	drive(b, time.Second)
	if b.Snapshot().ElapsedTotal != before.ElapsedTotal+time.Second {
		t.Fatal("resume did not continue from the frozen point")
	}
}

func TestBreathingStopResets(t *testing.T) {
	b, err := NewBreathingSession(simplePattern(), 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}

	b.Start()
	drive(b, 14*time.Second)
	b.Stop()

	snap := b.Snapshot()
	if snap.RunState != RunNotStarted || snap.Phase != PhaseInhale ||
		snap.ElapsedTotal != 0 || snap.Cycles != 0 {
		t.Fatalf("stop did not reset: %+v", snap)
	}
}

func TestBreathingStartsAtFirstNonZeroPhase(t *testing.T) {
	pattern := types.BreathingPattern{Name: "exhale-only", Exhale: 5 * time.Second}
	b, err := NewBreathingSession(pattern, 30*time.Second, 0)
	if err != nil {
		t.Fatal(err)
	}
	b.Start()
	if got := b.Snapshot().Phase; got != PhaseExhale {
		t.Fatalf("start phase %s, want exhale", got)
	}
}

func TestScaleBoundsAndMonotonicity(t *testing.T) {
	prev := -1.0
	for f := 0.0; f <= 1.0; f += 0.1 {
		s := Scale(PhaseInhale, f)
		if s < OrbScaleMin || s > OrbScaleMax {
			t.Fatalf("inhale scale %f out of bounds at fraction %f", s, f)
		}
		if s < prev {
			t.Fatalf("inhale scale not monotonic at fraction %f", f)
		}
		prev = s
	}

	prev = 2.0
	for f := 0.0; f <= 1.0; f += 0.1 {
		s := Scale(PhaseExhale, f)
		if s > prev {
			t.Fatalf("exhale scale not decreasing at fraction %f", f)
		}
		prev = s
	}

	if Scale(PhaseHold1, 0.5) != OrbScaleMax {
		t.Fatal("hold1 must rest at the large extreme")
	}
	if Scale(PhaseHold2, 0.5) != OrbScaleMin {
		t.Fatal("hold2 must rest at the small extreme")
	}
}
