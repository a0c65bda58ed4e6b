package session

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/pkg/types"
)

// VoiceState is the session's position in the capture/exchange cycle.
type VoiceState string

const (
	StateIdle       VoiceState = "idle"
	StateListening  VoiceState = "listening"
	StateProcessing VoiceState = "processing"
	StateSpeaking   VoiceState = "speaking"
	StateError      VoiceState = "error"
)

// Speaker labels one side of the conversation.
type Speaker string

const (
	SpeakerUser Speaker = "user"
	SpeakerAI   Speaker = "ai"
)

// Turn is one utterance in the session history. History is append-only
// and never reordered.
type Turn struct {
	Speaker Speaker   `json:"speaker"`
	Text    string    `json:"text"`
	At      time.Time `json:"at"`
}

// Classifier is the fire-and-forget classification sink for
// end-of-session mood analysis.
type Classifier interface {
	Enqueue(userID string, source types.SourceKind, sourceID, text string) bool
}

// VoiceSession is one live voice conversation. It owns exactly one AI
// chat handle, created fresh on first start; the handle is never shared
// with another surface. All state is in-memory and discarded at End; the
// only durable trace is the end-of-session mood classification.
type VoiceSession struct {
	ID     string
	UserID string

	gateway    ai.Gateway
	bridge     SpeechBridge
	classifier Classifier

	mu         sync.Mutex
	state      VoiceState
	chat       ai.ChatSession
	transcript strings.Builder
	turns      []Turn
	lastError  string
	startedAt  time.Time
	alive      bool

	// OnStateChange, when set, observes every transition. Called outside
	// the session lock.
	OnStateChange func(state VoiceState, errMsg string)
}

// NewVoiceSession creates an idle session. Start opens the chat handle.
func NewVoiceSession(id, userID string, gateway ai.Gateway, bridge SpeechBridge, classifier Classifier) *VoiceSession {
	return &VoiceSession{
		ID:         id,
		UserID:     userID,
		gateway:    gateway,
		bridge:     bridge,
		classifier: classifier,
		state:      StateIdle,
		startedAt:  time.Now(),
		alive:      true,
	}
}

// State returns the current state.
func (s *VoiceSession) State() VoiceState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the most recent error message, empty when none.
func (s *VoiceSession) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Turns returns a copy of the conversation history.
func (s *VoiceSession) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Duration returns the session's wall-clock length, floored at one
// minute for classification tagging.
func (s *VoiceSession) Duration() time.Duration {
	d := time.Since(s.startedAt)
	if d < time.Minute {
		return time.Minute
	}
	return d
}

// Start begins a listening turn. Valid from idle or error; any other
// state ignores the call. The chat handle is opened on the first start.
func (s *VoiceSession) Start(ctx context.Context) error {
	s.mu.Lock()
	if !s.alive || (s.state != StateIdle && s.state != StateError) {
		s.mu.Unlock()
		return nil
	}
	needChat := s.chat == nil
	s.mu.Unlock()

	if needChat {
		chat, err := s.gateway.StartChat(ctx, nil)
		if err != nil {
			s.setState(StateError, "assistant unavailable")
			return err
		}
		s.mu.Lock()
		s.chat = chat
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.transcript.Reset()
	s.lastError = ""
	s.mu.Unlock()

	err := s.bridge.StartCapture(CaptureCallbacks{
		OnResult: s.onResult,
		OnError:  s.onCaptureError,
		OnEnd:    s.onCaptureEnd,
	})
	if err != nil {
		s.setState(StateError, "microphone unavailable")
		return err
	}

	s.setState(StateListening, "")
	return nil
}

// StopListening ends the capture turn. Valid only while listening; the
// transcript is processed when the recognizer's end event arrives.
func (s *VoiceSession) StopListening() {
	s.mu.Lock()
	if s.state != StateListening {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.setState(StateProcessing, "")
	s.bridge.StopCapture()
}

// End tears the session down: speech stops immediately, and if the user
// said anything the concatenated user turns are queued for a single
// voice-sourced classification. Enqueue failure is logged, never
// surfaced; teardown does not block on it.
func (s *VoiceSession) End() {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.alive = false

	var userText []string
	for _, t := range s.turns {
		if t.Speaker == SpeakerUser {
			userText = append(userText, t.Text)
		}
	}
	s.mu.Unlock()

	s.bridge.StopCapture()
	s.bridge.CancelSpeech()

	if len(userText) == 0 {
		return
	}
	if !s.classifier.Enqueue(s.UserID, types.SourceVoice, s.ID, strings.Join(userText, "\n")) {
		log.Printf("voice session %s: end-of-session classification not queued", s.ID)
	}
}

// onResult accumulates final transcript fragments.
func (s *VoiceSession) onResult(text string, final bool) {
	if !final {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alive {
		return
	}
	if s.transcript.Len() > 0 {
		s.transcript.WriteByte(' ')
	}
	s.transcript.WriteString(text)
}

// onCaptureError surfaces the engine's error code verbatim.
func (s *VoiceSession) onCaptureError(code string) {
	s.setState(StateError, code)
}

// onCaptureEnd fires when the recognizer flushed its last result. An
// empty transcript returns to idle with no AI call; otherwise the
// exchange runs on its own goroutine so the event loop stays free.
func (s *VoiceSession) onCaptureEnd() {
	s.mu.Lock()
	if !s.alive || (s.state != StateProcessing && s.state != StateListening) {
		s.mu.Unlock()
		return
	}
	s.state = StateProcessing
	text := strings.TrimSpace(s.transcript.String())
	s.mu.Unlock()

	if text == "" {
		s.setState(StateIdle, "")
		return
	}

	go s.exchange(text)
}

// exchange runs exactly one AI turn. A failed turn never touches the
// history; the error lives in the error field only.
func (s *VoiceSession) exchange(text string) {
	s.mu.Lock()
	chat := s.chat
	s.mu.Unlock()
	if chat == nil {
		s.setState(StateError, "assistant unavailable")
		return
	}

	reply, err := chat.Send(context.Background(), text)

	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	if err != nil {
		s.state = StateError
		s.lastError = "assistant unavailable"
		s.mu.Unlock()
		s.notify(StateError, "assistant unavailable")
		return
	}
	now := time.Now()
	s.turns = append(s.turns,
		Turn{Speaker: SpeakerUser, Text: text, At: now},
		Turn{Speaker: SpeakerAI, Text: reply, At: now},
	)
	s.state = StateSpeaking
	s.mu.Unlock()
	s.notify(StateSpeaking, "")

	err = s.bridge.Speak(reply, SpeakCallbacks{
		OnEnd:   func() { s.setState(StateIdle, "") },
		OnError: func(code string) { s.setState(StateError, code) },
	})
	if err != nil {
		s.setState(StateError, "speech synthesis unavailable")
	}
}

// setState transitions under the liveness guard and notifies.
func (s *VoiceSession) setState(state VoiceState, errMsg string) {
	s.mu.Lock()
	if !s.alive {
		s.mu.Unlock()
		return
	}
	s.state = state
	s.lastError = errMsg
	s.mu.Unlock()
	s.notify(state, errMsg)
}

func (s *VoiceSession) notify(state VoiceState, errMsg string) {
	if s.OnStateChange != nil {
		s.OnStateChange(state, errMsg)
	}
}
