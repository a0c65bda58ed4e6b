package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"nhooyr.io/websocket"

	"github.com/solacehq/solace/internal/ai"
	"github.com/solacehq/solace/internal/session"
)

// VoiceHandlers serves the voice conversation WebSocket. The browser
// owns the actual speech engines; the server drives them remotely with
// command frames and receives capture and playback events back.
type VoiceHandlers struct {
	gateway    ai.Gateway
	classifier session.Classifier
	registry   *session.Registry[*session.VoiceSession]
	enabled    bool
}

// NewVoiceHandlers creates the voice WebSocket handler. maxSessions
// bounds concurrent connections.
func NewVoiceHandlers(gateway ai.Gateway, classifier session.Classifier, maxSessions int, enabled bool) *VoiceHandlers {
	return &VoiceHandlers{
		gateway:    gateway,
		classifier: classifier,
		registry:   session.NewRegistry[*session.VoiceSession](maxSessions),
		enabled:    enabled,
	}
}

// SessionCount reports the number of live voice sessions.
func (h *VoiceHandlers) SessionCount() int {
	return h.registry.Len()
}

// voiceClientFrame is one inbound message from the browser.
type voiceClientFrame struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Final bool   `json:"final,omitempty"`
	Code  string `json:"code,omitempty"`
}

// voiceServerFrame is one outbound message to the browser.
type voiceServerFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id,omitempty"`
	Command   string `json:"command,omitempty"`
	Payload   string `json:"payload,omitempty"`
	State     string `json:"state,omitempty"`
	Error     string `json:"error,omitempty"`
}

// voiceConn serializes writes to one WebSocket connection. State
// callbacks and bridge commands arrive from different goroutines.
type voiceConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *voiceConn) write(frame voiceServerFrame) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return c.conn.Write(ctx, websocket.MessageText, data)
}

// ServeWS handles GET /ws/voice. One connection is one session; closing
// the socket ends the session.
func (h *VoiceHandlers) ServeWS(w http.ResponseWriter, r *http.Request) {
	if !h.enabled {
		respondError(w, http.StatusServiceUnavailable, "voice sessions are disabled", nil)
		return
	}
	userID := UserID(r)

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		log.Printf("ERROR: voice WebSocket upgrade failed: %v", err)
		return
	}
	wc := &voiceConn{conn: conn}

	bridge := session.NewRemoteBridge(func(command, payload string) error {
		return wc.write(voiceServerFrame{Type: "command", Command: command, Payload: payload})
	})

	sess := session.NewVoiceSession("", userID, h.gateway, bridge, h.classifier)
	id, err := h.registry.Add(sess)
	if err != nil {
		if errors.Is(err, session.ErrTooManySessions) {
			_ = wc.write(voiceServerFrame{Type: "error", Error: "too many voice sessions"})
		}
		_ = conn.Close(websocket.StatusTryAgainLater, "session limit reached")
		return
	}
	sess.ID = id
	sess.OnStateChange = func(state session.VoiceState, errMsg string) {
		if err := wc.write(voiceServerFrame{Type: "state", State: string(state), Error: errMsg}); err != nil {
			log.Printf("voice session %s: state push failed: %v", id, err)
		}
	}

	log.Printf("Voice session %s started for user %s", id, userID)
	_ = wc.write(voiceServerFrame{Type: "session", SessionID: id, State: string(session.StateIdle)})

	h.readLoop(r.Context(), wc, bridge, sess)

	sess.End()
	h.registry.Remove(id)
	_ = conn.Close(websocket.StatusNormalClosure, "")
	log.Printf("Voice session %s ended after %s", id, sess.Duration().Round(time.Second))
}

func (h *VoiceHandlers) readLoop(ctx context.Context, wc *voiceConn, bridge *session.RemoteBridge, sess *session.VoiceSession) {
	for {
		_, data, err := wc.conn.Read(ctx)
		if err != nil {
			return
		}
		var frame voiceClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			_ = wc.write(voiceServerFrame{Type: "error", Error: "malformed frame"})
			continue
		}

		switch frame.Type {
		case "start":
			if err := sess.Start(ctx); err != nil {
				_ = wc.write(voiceServerFrame{Type: "error", Error: "could not start listening"})
			}
		case "stop":
			sess.StopListening()
		case "transcript":
			bridge.DeliverTranscript(frame.Text, frame.Final)
		case "capture_end":
			bridge.DeliverCaptureEnd()
		case "capture_error":
			bridge.DeliverCaptureError(frame.Code)
		case "speak_done":
			bridge.DeliverSpeakDone()
		case "speak_error":
			bridge.DeliverSpeakError(frame.Code)
		case "end":
			return
		default:
			_ = wc.write(voiceServerFrame{Type: "error", Error: "unknown frame type"})
		}
	}
}
