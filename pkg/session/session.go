// Package session tracks per-call translation state.
//
// Each active phone call owns one Session: the languages of the two
// parties and a coarse conversation stage. The Store is the sole owner
// and mutator of session state; everything else goes through its
// lifecycle methods.
package session

import "time"

// Stage is the coarse phase of a call session.
type Stage string

const (
	// StageLanguageSelection means the caller has not yet resolved a
	// language pair. Translation is never attempted in this stage.
	StageLanguageSelection Stage = "language-selection"

	// StageTranslation means both languages are set and every utterance
	// is translated to the opposite party. A session never leaves this
	// stage once it enters it.
	StageTranslation Stage = "translation"
)

// String returns the stage label.
func (s Stage) String() string { return string(s) }

// Session is the per-call translation state.
type Session struct {
	// CallID is the opaque identifier assigned by the telephony provider.
	CallID string `json:"callId"`

	// CustomerLanguage is the caller's language. Empty means unset.
	CustomerLanguage string `json:"customerLang"`

	// AssistantLanguage is the opposite party's language. Empty means unset.
	AssistantLanguage string `json:"assistantLang"`

	// Stage is the conversation phase.
	Stage Stage `json:"stage"`

	// LastActivityAt is when the session last processed an event.
	LastActivityAt time.Time `json:"lastUpdated"`
}

// New returns a fresh session for callID with both languages unset.
func New(callID string) *Session {
	return &Session{
		CallID:         callID,
		Stage:          StageLanguageSelection,
		LastActivityAt: time.Now(),
	}
}

// LanguagesSet reports whether both party languages are resolved.
func (s *Session) LanguagesSet() bool {
	return s.CustomerLanguage != "" && s.AssistantLanguage != ""
}

// SwapLanguages exchanges the two party languages. Stage is unchanged.
func (s *Session) SwapLanguages() {
	s.CustomerLanguage, s.AssistantLanguage = s.AssistantLanguage, s.CustomerLanguage
}

// Touch updates the activity timestamp.
func (s *Session) Touch() {
	s.LastActivityAt = time.Now()
}
