// Package server provides HTTP server initialization and lifecycle
// management for the Solace backend.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/config"
	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/importer"
	"github.com/solacehq/solace/internal/notify"
	"github.com/solacehq/solace/internal/session"
	"github.com/solacehq/solace/internal/storage"
	"github.com/solacehq/solace/internal/storage/memory"
	"github.com/solacehq/solace/internal/storage/postgres"
	"github.com/solacehq/solace/internal/storage/sqlite"
	"github.com/solacehq/solace/internal/storage/supabase"
	"github.com/solacehq/solace/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// OpenStore builds the persistence gateway selected by the config.
func OpenStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.StorageEngine {
	case "sqlite", "":
		return sqlite.NewStore(filepath.Join(cfg.Storage.DataPath, "solace.db"))
	case "postgres":
		return postgres.NewStore(cfg.Storage.PostgresDSN)
	case "supabase":
		return supabase.NewStore(cfg.Storage.SupabaseURL, cfg.Storage.SupabaseKey)
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage engine %q", cfg.Storage.StorageEngine)
	}
}

// Start initializes and starts the HTTP server. Returns the actual
// address being listened on (useful for testing with port 0) and the
// WebSocketHub for wiring extra event broadcasts. The store and gateway
// are injected so tests can run against the in-memory store and a stub
// model.
func Start(ctx context.Context, cfg *config.Config, store storage.Store, gateway ai.Gateway) (string, *handlers.WebSocketHub, error) {
	mux := http.NewServeMux()

	// WebSocket hub for live dashboard updates
	wsHub := handlers.NewWebSocketHub()
	go wsHub.Run()

	// Rate limiter (10 req/sec, burst of 20)
	rateLimiter := handlers.NewRateLimiter(10.0, 20)

	// Classification engine: async workers plus the synchronous path the
	// journal and chat handlers use.
	var embedder ai.EmbeddingGenerator
	if g, ok := gateway.(*ai.GeminiGateway); ok {
		embedder = g.Embedder(cfg.AI.EmbeddingModel)
	}
	eng, err := engine.New(store, gateway, embedder, engine.DefaultConfig())
	if err != nil {
		return "", nil, fmt.Errorf("create engine: %w", err)
	}
	eng.SetOnSummaryUpdated(wsHub.BroadcastSummaryUpdated)
	if err := eng.Start(ctx); err != nil {
		return "", nil, fmt.Errorf("start engine: %w", err)
	}

	// Inbox drop watcher: Markdown files saved into {DataPath}/inbox
	// become journal entries for the local development user.
	imp := importer.New(store, eng)
	if cfg.Security.SecurityMode == "development" && cfg.Storage.DataPath != "" {
		watcher := notify.NewDropWatcher(cfg.Storage.DataPath, func(wctx context.Context, path string) error {
			_, err := imp.ImportFile(wctx, handlers.DefaultDevUser, path)
			return err
		})
		if err := watcher.Start(); err != nil {
			log.Printf("Inbox watcher disabled: %v", err)
		} else {
			go func() {
				<-ctx.Done()
				watcher.Stop()
			}()
		}
	}

	// Breathing pattern catalog
	patterns := session.DefaultPatterns()

	// Route handlers
	journalHandlers := handlers.NewJournalHandlers(store, eng)
	checkInHandlers := handlers.NewCheckInHandlers(store)
	chatHandlers := handlers.NewChatHandlers(store, gateway, eng)
	moodHandlers := handlers.NewMoodHandlers(store, eng)
	planHandlers := handlers.NewPlanHandlers(store, eng, cfg.Features.EnablePlans)
	breathingHandlers := handlers.NewBreathingHandlers(patterns)
	voiceHandlers := handlers.NewVoiceHandlers(gateway, eng, cfg.Sessions.MaxVoiceSessions, cfg.Features.EnableVoice)
	statsHandlers := handlers.NewStatsHandlers(cfg.Storage.StorageEngine, gateway, eng,
		voiceHandlers.SessionCount, wsHub.ClientCount)
	importHandlers := handlers.NewImportHandlers(imp)

	// API routes (require auth in production mode)
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/journal", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			journalHandlers.List(w, r)
		case http.MethodPost:
			journalHandlers.Create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/journal/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			journalHandlers.Get(w, r)
		case http.MethodPatch:
			journalHandlers.Update(w, r)
		case http.MethodDelete:
			journalHandlers.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/journal/{id}/related", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			journalHandlers.Related(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/checkins", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			checkInHandlers.List(w, r)
		case http.MethodPost:
			checkInHandlers.Create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/conversations", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			chatHandlers.ListConversations(w, r)
		case http.MethodPost:
			chatHandlers.CreateConversation(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/conversations/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			chatHandlers.GetConversation(w, r)
		case http.MethodDelete:
			chatHandlers.DeleteConversation(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/conversations/{id}/messages", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			chatHandlers.PostMessage(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/mood/summaries", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			moodHandlers.ListSummaries(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/mood/today", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			moodHandlers.Today(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/mood/trends", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			moodHandlers.Trends(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/mood/recompute", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			moodHandlers.Recompute(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/plans", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			planHandlers.List(w, r)
		case http.MethodPost:
			planHandlers.Generate(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			planHandlers.Get(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	apiMux.HandleFunc("/api/plans/exercises/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			planHandlers.SetExerciseCompleted(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/breathing/patterns", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			breathingHandlers.ListPatterns(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/import/markdown", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			importHandlers.PostMarkdownImport(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	apiMux.HandleFunc("/api/stats", statsHandlers.GetStats)

	// Health endpoint, no auth required, used by monitoring
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
	})

	// Wrap API routes with auth middleware
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoints (origin validation handles security)
	mux.Handle("/ws", wsHub)
	mux.Handle("/ws/voice", handlers.RequireAuth(http.HandlerFunc(voiceHandlers.ServeWS), cfg))

	// Wrap entire server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	actualAddr := listener.Addr().String()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	// Graceful shutdown: stop accepting requests, drain the
	// classification queue, then stop the hub.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		if err := eng.Shutdown(shutdownCtx); err != nil {
			log.Printf("Engine shutdown error: %v", err)
		}
		wsHub.Stop()
	}()

	return actualAddr, wsHub, nil
}
