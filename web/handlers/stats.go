package handlers

import (
	"net/http"
	"time"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/engine"
)

// StatsHandlers serves the service health snapshot: which storage
// engine is active, the model breaker state, and live session counts.
type StatsHandlers struct {
	startedAt     time.Time
	storageEngine string
	gateway       ai.Gateway
	engine        *engine.Engine
	voiceSessions func() int
	wsClients     func() int
}

// NewStatsHandlers creates the stats route handlers. The count funcs may
// be nil when the corresponding subsystem is disabled.
func NewStatsHandlers(storageEngine string, gateway ai.Gateway, eng *engine.Engine, voiceSessions, wsClients func() int) *StatsHandlers {
	return &StatsHandlers{
		startedAt:     time.Now(),
		storageEngine: storageEngine,
		gateway:       gateway,
		engine:        eng,
		voiceSessions: voiceSessions,
		wsClients:     wsClients,
	}
}

type breakerReporter interface {
	BreakerState() string
}

// GetStats handles GET /api/stats.
func (h *StatsHandlers) GetStats(w http.ResponseWriter, r *http.Request) {
	breakerState := "unknown"
	if reporter, ok := h.gateway.(breakerReporter); ok {
		breakerState = reporter.BreakerState()
	}

	stats := map[string]any{
		"uptime_seconds":    int(time.Since(h.startedAt).Seconds()),
		"storage_engine":    h.storageEngine,
		"ai_breaker_state":  breakerState,
		"classify_queue":    h.engine.QueueDepth(),
		"voice_sessions":    0,
		"websocket_clients": 0,
	}
	if h.voiceSessions != nil {
		stats["voice_sessions"] = h.voiceSessions()
	}
	if h.wsClients != nil {
		stats["websocket_clients"] = h.wsClients()
	}
	respondJSON(w, http.StatusOK, stats)
}
