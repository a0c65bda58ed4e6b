package session

import (
	"sync"
)

// Commands sent to the browser over the voice WebSocket.
const (
	CmdStartCapture = "start_capture"
	CmdStopCapture  = "stop_capture"
	CmdSpeak        = "speak"
	CmdCancelSpeech = "cancel_speech"
)

// SendFunc pushes one command frame to the connected client.
type SendFunc func(command string, payload string) error

// RemoteBridge is the server half of the speech bridge: commands go out
// through send, events come back in through the Deliver methods, called
// by the WebSocket handler as client frames arrive. Events for a
// resource that is no longer active are dropped, so a late recognizer
// callback cannot corrupt session state.
type RemoteBridge struct {
	mu        sync.Mutex
	send      SendFunc
	capturing bool
	captureCB CaptureCallbacks
	speaking  bool
	speakCB   SpeakCallbacks
}

// NewRemoteBridge wraps a WebSocket send function as a SpeechBridge.
func NewRemoteBridge(send SendFunc) *RemoteBridge {
	return &RemoteBridge{send: send}
}

// StartCapture implements SpeechBridge.
func (b *RemoteBridge) StartCapture(cb CaptureCallbacks) error {
	b.mu.Lock()
	b.capturing = true
	b.captureCB = cb
	b.mu.Unlock()
	return b.send(CmdStartCapture, "")
}

// StopCapture implements SpeechBridge. Capture stays active until the
// client's end event arrives; the recognizer may still flush results.
func (b *RemoteBridge) StopCapture() {
	_ = b.send(CmdStopCapture, "")
}

// Speak implements SpeechBridge.
func (b *RemoteBridge) Speak(text string, cb SpeakCallbacks) error {
	b.mu.Lock()
	b.speaking = true
	b.speakCB = cb
	b.mu.Unlock()
	return b.send(CmdSpeak, text)
}

// CancelSpeech implements SpeechBridge. The pending callback is dropped,
// not fired.
func (b *RemoteBridge) CancelSpeech() {
	b.mu.Lock()
	b.speaking = false
	b.speakCB = SpeakCallbacks{}
	b.mu.Unlock()
	_ = b.send(CmdCancelSpeech, "")
}

// DeliverTranscript feeds a recognition result from the client.
func (b *RemoteBridge) DeliverTranscript(text string, final bool) {
	b.mu.Lock()
	cb := b.captureCB
	active := b.capturing
	b.mu.Unlock()
	if active && cb.OnResult != nil {
		cb.OnResult(text, final)
	}
}

// DeliverCaptureEnd feeds the recognizer's end-of-input event.
func (b *RemoteBridge) DeliverCaptureEnd() {
	b.mu.Lock()
	cb := b.captureCB
	active := b.capturing
	b.capturing = false
	b.captureCB = CaptureCallbacks{}
	b.mu.Unlock()
	if active && cb.OnEnd != nil {
		cb.OnEnd()
	}
}

// DeliverCaptureError feeds a recognizer fault. Capture ends with it.
func (b *RemoteBridge) DeliverCaptureError(code string) {
	b.mu.Lock()
	cb := b.captureCB
	active := b.capturing
	b.capturing = false
	b.captureCB = CaptureCallbacks{}
	b.mu.Unlock()
	if active && cb.OnError != nil {
		cb.OnError(code)
	}
}

// DeliverSpeakDone feeds the synthesis completion event.
func (b *RemoteBridge) DeliverSpeakDone() {
	b.mu.Lock()
	cb := b.speakCB
	active := b.speaking
	b.speaking = false
	b.speakCB = SpeakCallbacks{}
	b.mu.Unlock()
	if active && cb.OnEnd != nil {
		cb.OnEnd()
	}
}

// DeliverSpeakError feeds a synthesis fault.
func (b *RemoteBridge) DeliverSpeakError(code string) {
	b.mu.Lock()
	cb := b.speakCB
	active := b.speaking
	b.speaking = false
	b.speakCB = SpeakCallbacks{}
	b.mu.Unlock()
	if active && cb.OnError != nil {
		cb.OnError(code)
	}
}

var _ SpeechBridge = (*RemoteBridge)(nil)
