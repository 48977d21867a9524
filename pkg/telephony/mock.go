package telephony

import (
	"context"
	"sync"
	"time"
)

// MockSpeaker implements Speaker for testing.
type MockSpeaker struct {
	// SpeakFunc is called when Speak is invoked. If nil, Speak
	// records the call and returns nil.
	SpeakFunc func(ctx context.Context, callID string, req SpeakRequest) error

	mu    sync.Mutex
	calls []SpokenUtterance
}

// SpokenUtterance records one Speak invocation.
type SpokenUtterance struct {
	CallID  string
	Channel Channel
	Text    string
	Time    time.Time
}

// NewMockSpeaker creates a recording mock speaker.
func NewMockSpeaker() *MockSpeaker {
	return &MockSpeaker{}
}

// SpeakerWithError returns a mock whose Speak always fails with err.
func SpeakerWithError(err error) *MockSpeaker {
	return &MockSpeaker{
		SpeakFunc: func(ctx context.Context, callID string, req SpeakRequest) error {
			return err
		},
	}
}

// Speak records the call and delegates to SpeakFunc.
func (m *MockSpeaker) Speak(ctx context.Context, callID string, req SpeakRequest) error {
	m.mu.Lock()
	m.calls = append(m.calls, SpokenUtterance{
		CallID:  callID,
		Channel: req.Channel,
		Text:    req.Text,
		Time:    time.Now(),
	})
	m.mu.Unlock()

	if m.SpeakFunc != nil {
		return m.SpeakFunc(ctx, callID, req)
	}
	return nil
}

// Utterances returns all recorded Speak calls.
func (m *MockSpeaker) Utterances() []SpokenUtterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SpokenUtterance, len(m.calls))
	copy(out, m.calls)
	return out
}

// Last returns the most recent Speak call, or nil if none.
func (m *MockSpeaker) Last() *SpokenUtterance {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return nil
	}
	u := m.calls[len(m.calls)-1]
	return &u
}

// Count returns the number of recorded Speak calls.
func (m *MockSpeaker) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears all recorded calls.
func (m *MockSpeaker) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify MockSpeaker implements Speaker at compile time.
var _ Speaker = (*MockSpeaker)(nil)
