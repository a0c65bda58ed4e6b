package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/engine"
	"github.com/solacehq/solace/internal/storage/memory"
	"github.com/solacehq/solace/pkg/types"
	"github.com/solacehq/solace/web/handlers"
)

const testUser = "user-1"

func withTestUser(r *http.Request) *http.Request {
	return handlers.WithUserID(r, testUser)
}

// fakeGateway is a deterministic Gateway for handler tests.
type fakeGateway struct {
	unavailable bool
	reply       string
	title       string
}

type fakeChat struct {
	g *fakeGateway
}

func (c *fakeChat) Send(ctx context.Context, message string) (string, error) {
	if c.g.unavailable {
		return "", ai.ErrUnavailable
	}
	return c.g.reply, nil
}

func (g *fakeGateway) StartChat(ctx context.Context, history []types.Message) (ai.ChatSession, error) {
	if g.unavailable {
		return nil, ai.ErrUnavailable
	}
	return &fakeChat{g: g}, nil
}

func (g *fakeGateway) Classify(ctx context.Context, text string, source types.SourceKind) (*ai.Classification, error) {
	if g.unavailable {
		return ai.FallbackClassification(), ai.ErrUnavailable
	}
	return &ai.Classification{
		PrimaryMood: types.MoodPeaceful,
		Intensity:   4,
		Confidence:  0.9,
		Reasoning:   "calm language",
		KeyEmotions: []string{"calm"},
	}, nil
}

func (g *fakeGateway) GenerateTitle(ctx context.Context, seed string) string {
	if g.title != "" {
		return g.title
	}
	return ai.TruncateTitle(seed)
}

func (g *fakeGateway) GeneratePlan(ctx context.Context, pattern ai.MoodPattern) *types.WeeklyPlan {
	return ai.TemplatePlan(pattern.DominantMood)
}

// fixture bundles the in-memory stack the handler tests run against.
type fixture struct {
	store   *memory.Store
	gateway *fakeGateway
	engine  *engine.Engine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	t.Cleanup(func() { _ = store.Close() })

	gateway := &fakeGateway{reply: "That sounds manageable.", title: "A quiet check-in"}
	eng, err := engine.New(store, gateway, nil, engine.DefaultConfig())
	require.NoError(t, err)
	return &fixture{store: store, gateway: gateway, engine: eng}
}

// doJSON builds an authenticated request and runs it through fn.
func doJSON(t *testing.T, fn http.HandlerFunc, method, target string, body any, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	for key, value := range pathValues {
		req.SetPathValue(key, value)
	}
	req = withTestUser(req)
	w := httptest.NewRecorder()
	fn(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	return out
}
