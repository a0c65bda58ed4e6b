package session

import (
	"context"
	"sync"
	"time"

	"github.com/solacehq/solace/pkg/types"
)

// Phase is one slice of the breathing cycle.
type Phase string

const (
	PhaseInhale Phase = "inhale"
	PhaseHold1  Phase = "hold1"
	PhaseExhale Phase = "exhale"
	PhaseHold2  Phase = "hold2"
)

// phaseOrder is the fixed cyclic traversal.
var phaseOrder = []Phase{PhaseInhale, PhaseHold1, PhaseExhale, PhaseHold2}

// RunState is the session-level run status, orthogonal to the phase.
type RunState string

const (
	RunNotStarted RunState = "not_started"
	RunRunning    RunState = "running"
	RunPaused     RunState = "paused"
	RunComplete   RunState = "complete"
)

// Orb scale extremes. Scale interpolates between them while breathing
// and holds steady during the hold phases.
const (
	OrbScaleMin = 0.8
	OrbScaleMax = 1.3
)

// BreathingSnapshot is the state pushed to the client on every tick.
type BreathingSnapshot struct {
	Phase          Phase         `json:"phase"`
	RunState       RunState      `json:"run_state"`
	ElapsedInPhase time.Duration `json:"elapsed_in_phase"`
	ElapsedTotal   time.Duration `json:"elapsed_total"`
	Cycles         int           `json:"cycles"`
	Scale          float64       `json:"scale"`
}

// BreathingSession is one guided-breathing run. Time advances through
// Advance, normally fed by the ticker goroutine Run starts; tests drive
// Advance directly. Pause freezes the counters, Stop resets everything.
type BreathingSession struct {
	pattern  types.BreathingPattern
	total    time.Duration
	interval time.Duration

	mu             sync.Mutex
	phase          Phase
	runState       RunState
	elapsedInPhase time.Duration
	elapsedTotal   time.Duration
	cycles         int

	// OnTick observes every state change, called outside the lock.
	OnTick func(BreathingSnapshot)
}

// NewBreathingSession creates a run with the given pattern and total
// duration. Patterns with no non-zero phase are rejected to keep phase
// advancement from spinning.
func NewBreathingSession(pattern types.BreathingPattern, total, tickInterval time.Duration) (*BreathingSession, error) {
	if !pattern.Valid() {
		return nil, ErrInvalidPattern
	}
	if total <= 0 {
		return nil, ErrInvalidDuration
	}
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	return &BreathingSession{
		pattern:  pattern,
		total:    total,
		interval: tickInterval,
		phase:    PhaseInhale,
		runState: RunNotStarted,
	}, nil
}

// Start begins (or resumes, after Stop) the run from the first
// non-zero phase.
func (b *BreathingSession) Start() {
	b.mu.Lock()
	if b.runState == RunRunning || b.runState == RunComplete {
		b.mu.Unlock()
		return
	}
	if b.runState == RunNotStarted {
		b.phase = b.firstPhase()
	}
	b.runState = RunRunning
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(snap)
}

// Pause freezes both elapsed counters.
func (b *BreathingSession) Pause() {
	b.mu.Lock()
	if b.runState != RunRunning {
		b.mu.Unlock()
		return
	}
	b.runState = RunPaused
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(snap)
}

// Resume continues from the frozen point.
func (b *BreathingSession) Resume() {
	b.mu.Lock()
	if b.runState != RunPaused {
		b.mu.Unlock()
		return
	}
	b.runState = RunRunning
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(snap)
}

// Stop resets all counters and returns to inhale/not-started.
func (b *BreathingSession) Stop() {
	b.mu.Lock()
	b.runState = RunNotStarted
	b.phase = PhaseInhale
	b.elapsedInPhase = 0
	b.elapsedTotal = 0
	b.cycles = 0
	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(snap)
}

// Advance moves time forward by dt. Ticks while paused, not started, or
// complete are ignored; nothing is ever "in flight" across a pause.
func (b *BreathingSession) Advance(dt time.Duration) {
	b.mu.Lock()
	if b.runState != RunRunning {
		b.mu.Unlock()
		return
	}

	b.elapsedTotal += dt
	b.elapsedInPhase += dt

	if b.elapsedTotal >= b.total {
		b.elapsedTotal = b.total
		b.runState = RunComplete
		snap := b.snapshotLocked()
		b.mu.Unlock()
		b.emit(snap)
		return
	}

	if b.elapsedInPhase >= b.phaseDuration(b.phase) {
		b.advancePhase()
		b.elapsedInPhase = 0
	}

	snap := b.snapshotLocked()
	b.mu.Unlock()
	b.emit(snap)
}

// Run drives Advance from a wall-clock ticker until the session
// completes or ctx is cancelled. Intended as a goroutine.
func (b *BreathingSession) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			b.Advance(b.interval)
			b.mu.Lock()
			done := b.runState == RunComplete
			b.mu.Unlock()
			if done {
				return
			}
		}
	}
}

// Snapshot returns the current state.
func (b *BreathingSession) Snapshot() BreathingSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked()
}

func (b *BreathingSession) snapshotLocked() BreathingSnapshot {
	return BreathingSnapshot{
		Phase:          b.phase,
		RunState:       b.runState,
		ElapsedInPhase: b.elapsedInPhase,
		ElapsedTotal:   b.elapsedTotal,
		Cycles:         b.cycles,
		Scale:          Scale(b.phase, b.fractionLocked()),
	}
}

func (b *BreathingSession) fractionLocked() float64 {
	d := b.phaseDuration(b.phase)
	if d <= 0 {
		return 0
	}
	f := float64(b.elapsedInPhase) / float64(d)
	if f > 1 {
		f = 1
	}
	return f
}

func (b *BreathingSession) emit(snap BreathingSnapshot) {
	if b.OnTick != nil {
		b.OnTick(snap)
	}
}

func (b *BreathingSession) phaseDuration(p Phase) time.Duration {
	switch p {
	case PhaseInhale:
		return b.pattern.Inhale
	case PhaseHold1:
		return b.pattern.Hold1
	case PhaseExhale:
		return b.pattern.Exhale
	case PhaseHold2:
		return b.pattern.Hold2
	}
	return 0
}

// firstPhase is the first non-zero phase in cycle order. The pattern is
// validated non-empty at construction.
func (b *BreathingSession) firstPhase() Phase {
	for _, p := range phaseOrder {
		if b.phaseDuration(p) > 0 {
			return p
		}
	}
	return PhaseInhale
}

// advancePhase steps to the next non-zero phase in cyclic order and
// counts a completed cycle each time inhale is re-entered. The loop is
// bounded by the phase count, so an all-but-one-zero pattern cannot
// spin.
func (b *BreathingSession) advancePhase() {
	idx := phaseIndex(b.phase)
	for i := 0; i < len(phaseOrder); i++ {
		idx = (idx + 1) % len(phaseOrder)
		next := phaseOrder[idx]
		if b.phaseDuration(next) == 0 {
			continue
		}
		if next == PhaseInhale {
			b.cycles++
		}
		b.phase = next
		return
	}
}

func phaseIndex(p Phase) int {
	for i, candidate := range phaseOrder {
		if candidate == p {
			return i
		}
	}
	return 0
}

// Scale maps phase progress to the orb's size: growing through inhale,
// shrinking through exhale, held at the phase's end extreme during
// holds. Monotonic within a phase and bounded to the extremes.
func Scale(phase Phase, fraction float64) float64 {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	span := OrbScaleMax - OrbScaleMin
	switch phase {
	case PhaseInhale:
		return OrbScaleMin + span*fraction
	case PhaseHold1:
		return OrbScaleMax
	case PhaseExhale:
		return OrbScaleMax - span*fraction
	default: // hold2 rests at the small extreme
		return OrbScaleMin
	}
}
