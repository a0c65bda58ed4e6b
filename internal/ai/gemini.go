package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"github.com/solacehq/solace/pkg/types"
)

// ApologyReply is the fixed supportive line callers fall back to when a
// chat turn fails and they choose to degrade instead of surfacing an
// error.
const ApologyReply = apologyReply

// GeminiConfig holds Gemini gateway configuration.
type GeminiConfig struct {
	// APIKey is the Gemini API key. When empty the gateway runs in
	// degraded mode: every structured call yields its fallback and chat
	// turns fail with ErrUnavailable.
	APIKey string

	// ChatModel is used for conversational turns (default: gemini-2.0-flash).
	ChatModel string

	// ClassifyModel is used for classification, titles, and plans
	// (default: gemini-2.0-flash).
	ClassifyModel string

	// Timeout bounds each individual model call (default: 30s).
	Timeout time.Duration

	// RequestsPerMinute caps outbound calls (default: 30).
	RequestsPerMinute float64
}

// GeminiGateway implements Gateway against the hosted Gemini API.
// All outbound calls pass through a shared rate limiter and circuit
// breaker so one stuck upstream cannot pile up goroutines.
type GeminiGateway struct {
	client        *genai.Client
	chatModel     string
	classifyModel string
	timeout       time.Duration
	limiter       *rate.Limiter
	breaker       *Breaker
}

// NewGeminiGateway creates a Gemini gateway. A missing API key is not an
// error: the gateway is returned in degraded mode and every operation
// falls back, which keeps local development usable without credentials.
func NewGeminiGateway(ctx context.Context, cfg GeminiConfig) (*GeminiGateway, error) {
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gemini-2.0-flash"
	}
	if cfg.ClassifyModel == "" {
		cfg.ClassifyModel = "gemini-2.0-flash"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 30
	}

	g := &GeminiGateway{
		chatModel:     cfg.ChatModel,
		classifyModel: cfg.ClassifyModel,
		timeout:       cfg.Timeout,
		limiter:       rate.NewLimiter(rate.Limit(cfg.RequestsPerMinute/60.0), 5),
		breaker:       NewBreaker(),
	}

	if cfg.APIKey == "" {
		log.Println("ai: no Gemini API key configured, gateway running in degraded mode")
		return g, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// BreakerState exposes the circuit breaker state for the stats endpoint.
func (g *GeminiGateway) BreakerState() string {
	return g.breaker.State()
}

// generate runs a single one-shot completion through the limiter and
// breaker. jsonOutput asks the model for an application/json response.
func (g *GeminiGateway) generate(ctx context.Context, model, prompt string, jsonOutput bool) (string, error) {
	if g.client == nil {
		return "", ErrUnavailable
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.6),
	}
	if jsonOutput {
		cfg.ResponseMIMEType = "application/json"
		cfg.Temperature = genai.Ptr[float32](0.2)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := g.breaker.Execute(ctx, func() (interface{}, error) {
		resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
		if err != nil {
			return nil, err
		}
		text := resp.Text()
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("model returned empty response")
		}
		return text, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return result.(string), nil
}

// StartChat opens a fresh conversation handle with the companion system
// prompt. Prior persisted turns may be replayed into the handle so a
// resumed conversation keeps its context.
func (g *GeminiGateway) StartChat(ctx context.Context, history []types.Message) (ChatSession, error) {
	if g.client == nil {
		return nil, ErrUnavailable
	}

	var seed []*genai.Content
	for _, m := range history {
		role := genai.Role(genai.RoleUser)
		if m.Role == types.RoleAssistant {
			role = genai.RoleModel
		}
		seed = append(seed, genai.NewContentFromText(m.Content, role))
	}

	chat, err := g.client.Chats.Create(ctx, g.chatModel, &genai.GenerateContentConfig{
		Temperature:       genai.Ptr[float32](0.7),
		SystemInstruction: genai.NewContentFromText(companionSystemPrompt, genai.RoleUser),
	}, seed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return &geminiChatSession{chat: chat, gw: g}, nil
}

// geminiChatSession wraps one genai chat handle. The model-side history
// accumulates inside the handle; the session is owned by exactly one
// caller (voice session or text conversation) at a time.
type geminiChatSession struct {
	chat *genai.Chat
	gw   *GeminiGateway
}

func (s *geminiChatSession) Send(ctx context.Context, message string) (string, error) {
	if err := s.gw.limiter.Wait(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, s.gw.timeout)
	defer cancel()

	result, err := s.gw.breaker.Execute(ctx, func() (interface{}, error) {
		resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
		if err != nil {
			return nil, err
		}
		text := resp.Text()
		if strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("model returned empty reply")
		}
		return text, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return strings.TrimSpace(result.(string)), nil
}

// Classify analyzes one piece of user text. A usable Classification is
// always returned; the error reports why a fallback was substituted.
func (g *GeminiGateway) Classify(ctx context.Context, text string, source types.SourceKind) (*Classification, error) {
	raw, err := g.generate(ctx, g.classifyModel, ClassificationPrompt(text, source), true)
	if err != nil {
		return FallbackClassification(), err
	}

	c, err := ParseClassification(raw)
	if err != nil {
		return FallbackClassification(), err
	}
	return c, nil
}

// GenerateTitle produces a short conversation title, falling back to a
// truncation of the seed text on any failure.
func (g *GeminiGateway) GenerateTitle(ctx context.Context, seed string) string {
	raw, err := g.generate(ctx, g.classifyModel, TitlePrompt(seed), false)
	if err != nil {
		return TruncateTitle(seed)
	}

	title := strings.Trim(strings.TrimSpace(raw), `"'`)
	if title == "" || len(title) > 80 {
		return TruncateTitle(seed)
	}
	return title
}

// GeneratePlan produces a weekly plan for the given mood pattern,
// substituting the deterministic template keyed on the dominant mood
// whenever the model output is unusable.
func (g *GeminiGateway) GeneratePlan(ctx context.Context, pattern MoodPattern) *types.WeeklyPlan {
	raw, err := g.generate(ctx, g.classifyModel, PlanPrompt(pattern), true)
	if err != nil {
		log.Printf("ai: plan generation failed, using template: %v", err)
		return TemplatePlan(pattern.DominantMood)
	}

	plan, err := ParsePlan(raw)
	if err != nil {
		log.Printf("ai: plan response unusable, using template: %v", err)
		return TemplatePlan(pattern.DominantMood)
	}
	return plan
}

// Compile-time assertion.
var _ Gateway = (*GeminiGateway)(nil)
