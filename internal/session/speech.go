// Package session holds the in-memory, per-user live sessions: voice
// conversations and guided breathing runs. Nothing in this package is
// persisted directly; a voice session's only durable trace is the mood
// classification submitted when it ends.
package session

// CaptureCallbacks receives speech-to-text events. Capture delivers
// zero or more results followed by exactly one end event.
type CaptureCallbacks struct {
	// OnResult delivers a transcript fragment. final marks fragments the
	// recognizer will not revise.
	OnResult func(text string, final bool)
	// OnError surfaces the engine's error code verbatim.
	OnError func(code string)
	// OnEnd signals that capture finished and no more results follow.
	OnEnd func()
}

// SpeakCallbacks receives text-to-speech completion. Exactly one of
// OnEnd or OnError fires per Speak call.
type SpeakCallbacks struct {
	OnEnd   func()
	OnError func(code string)
}

// SpeechBridge is the capture/synthesis resource a voice session drives.
// The actual engines live in the user's browser; the server-side bridge
// relays commands out over the voice WebSocket and feeds events back in.
// Both resources are two-state: capturing or not, speaking or not.
type SpeechBridge interface {
	// StartCapture begins continuous speech-to-text. Results arrive via
	// the callbacks until StopCapture or an engine fault.
	StartCapture(cb CaptureCallbacks) error
	// StopCapture asks the recognizer to finish; OnEnd still fires.
	StopCapture()
	// Speak synthesizes the text and fires exactly one callback when
	// done or failed.
	Speak(text string, cb SpeakCallbacks) error
	// CancelSpeech aborts synthesis without firing OnEnd.
	CancelSpeech()
}
