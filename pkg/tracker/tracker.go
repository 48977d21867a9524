// Package tracker implements the per-call translation loop.
//
// The tracker consumes telephony webhook events, keeps the per-call
// language pair and conversation stage in a session store, and drives
// the oracle (detect or translate) and the speech sink (speak the
// result to the opposite party). It owns all call-state decisions;
// the HTTP layer only parses events and hands them over.
package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/virio-ai/go-translator/pkg/language"
	"github.com/virio-ai/go-translator/pkg/oracle"
	"github.com/virio-ai/go-translator/pkg/session"
	"github.com/virio-ai/go-translator/pkg/telephony"
)

// Trigger words recognized in transcriptions, matched case-insensitively
// by substring.
const (
	detectTrigger = "detect"

	switchTrigger = "switch language"
	changeTrigger = "change language"
)

// Spoken prompts. The welcome, confirmation and fallback texts are part
// of the caller-facing contract and are spoken verbatim.
const (
	welcomePrompt = `Welcome to the language translator. Please say your preferred language or say "detect" to auto-detect your language.`

	confirmPromptFmt = `I'll translate from %s to %s. You can say "switch languages" at any time to swap them.`

	unrecognizedPrompt = `I didn't recognize that language. Please choose from: English, Spanish, French, German, or say "detect" to auto-detect.`

	switchedPromptFmt = `Languages switched. Now translating from %s to %s.`

	detectedPromptFmt = `I detected %s. I'll translate to %s.`

	detectUnsupportedPrompt = `I couldn't confidently detect your language. Please specify your language in English.`

	detectTroublePrompt = `I'm having trouble detecting your language. Please specify your language in English.`
)

// Activity is a debug notification emitted after each processed event,
// consumed by the live event feed. Not part of the translation logic.
type Activity struct {
	Kind    string            `json:"kind"`
	CallID  string            `json:"callId"`
	Channel telephony.Channel `json:"channel,omitempty"`
	Text    string            `json:"text,omitempty"`
}

// Tracker maintains per-call translation sessions and reacts to
// inbound telephony events.
type Tracker struct {
	store   *session.Store
	oracle  oracle.Provider
	speaker telephony.Speaker
	logger  *slog.Logger
	stats   stats

	// OnActivity, when set, receives a debug notification per processed
	// event. Must be safe for concurrent use and must not block.
	OnActivity func(Activity)
}

// New creates a tracker over the given store, oracle and speech sink.
func New(store *session.Store, o oracle.Provider, speaker telephony.Speaker, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Tracker{
		store:   store,
		oracle:  o,
		speaker: speaker,
		logger:  logger.With("component", "tracker"),
	}
}

// HandleEvent processes one inbound webhook event. It never returns an
// error: every failure is terminal at its point of occurrence, logged,
// and mapped to a spoken fallback or a dropped turn. Safe to call
// concurrently for independent call IDs.
func (t *Tracker) HandleEvent(ctx context.Context, ev telephony.Event) {
	t.stats.events.Add(1)
	t.logger.Info("received event",
		"type", ev.Type,
		"call_id", ev.CallID,
		"channel", ev.Channel,
	)

	switch ev.Type {
	case telephony.EventCallStart:
		t.onCallStart(ctx, ev)
	case telephony.EventCallEnd:
		t.onCallEnd(ev)
	case telephony.EventTranscription:
		t.onTranscription(ctx, ev)
	default:
		t.logger.Warn("ignoring unknown event type", "type", ev.Type, "call_id", ev.CallID)
	}
}

// onCallStart creates a fresh session, overwriting any existing one,
// and greets the caller.
func (t *Tracker) onCallStart(ctx context.Context, ev telephony.Event) {
	t.store.Create(ev.CallID)
	t.logger.Info("new call started", "call_id", ev.CallID)

	t.speak(ctx, ev.CallID, telephony.ChannelAssistant, welcomePrompt)
	t.notify(Activity{Kind: "call-start", CallID: ev.CallID})
}

// onCallEnd deletes the session. No-op when absent.
func (t *Tracker) onCallEnd(ev telephony.Event) {
	t.store.Delete(ev.CallID)
	t.logger.Info("call ended", "call_id", ev.CallID)
	t.notify(Activity{Kind: "call-end", CallID: ev.CallID})
}

func (t *Tracker) onTranscription(ctx context.Context, ev telephony.Event) {
	if ev.Transcription == "" {
		return
	}

	// Unknown call IDs get an implicit fresh session.
	var snap session.Session
	t.store.Update(ev.CallID, func(s *session.Session) { snap = *s })

	t.logger.Debug("transcription",
		"call_id", ev.CallID,
		"channel", ev.Channel,
		"text", ev.Transcription,
	)

	lower := strings.ToLower(ev.Transcription)

	if snap.Stage == session.StageLanguageSelection && ev.Channel == telephony.ChannelCustomer {
		if strings.Contains(lower, detectTrigger) {
			t.detectAndConfigure(ctx, ev)
			return
		}
		t.selectLanguage(ctx, ev)
		return
	}

	if strings.Contains(lower, switchTrigger) || strings.Contains(lower, changeTrigger) {
		t.switchLanguages(ctx, ev)
		return
	}

	if snap.Stage == session.StageTranslation {
		t.translateAndSpeak(ctx, ev, snap)
	}
}

// selectLanguage resolves an explicitly stated language against the
// catalog and configures the session, or re-prompts.
func (t *Tracker) selectLanguage(ctx context.Context, ev telephony.Event) {
	lang, ok := language.Match(ev.Transcription)
	if !ok {
		t.speak(ctx, ev.CallID, telephony.ChannelAssistant, unrecognizedPrompt)
		t.notify(Activity{Kind: "language-unrecognized", CallID: ev.CallID, Text: ev.Transcription})
		return
	}

	partner := language.Complement(lang)
	t.store.Update(ev.CallID, func(s *session.Session) {
		s.CustomerLanguage = lang
		s.AssistantLanguage = partner
		s.Stage = session.StageTranslation
		s.Touch()
	})
	t.logger.Info("languages set", "call_id", ev.CallID, "customer", lang, "assistant", partner)

	t.speakf(ctx, ev.CallID, telephony.ChannelAssistant, confirmPromptFmt, lang, partner)
	t.notify(Activity{Kind: "languages-set", CallID: ev.CallID, Text: lang + " / " + partner})
}

// switchLanguages swaps the two party languages. Stage never changes.
func (t *Tracker) switchLanguages(ctx context.Context, ev telephony.Event) {
	var customer, assistant string
	t.store.Update(ev.CallID, func(s *session.Session) {
		s.SwapLanguages()
		s.Touch()
		customer, assistant = s.CustomerLanguage, s.AssistantLanguage
	})
	t.logger.Info("languages switched", "call_id", ev.CallID, "customer", customer, "assistant", assistant)

	t.speakf(ctx, ev.CallID, telephony.ChannelAssistant, switchedPromptFmt, customer, assistant)
	t.notify(Activity{Kind: "languages-switched", CallID: ev.CallID, Text: customer + " / " + assistant})
}

// detectAndConfigure asks the oracle to name the spoken language and
// configures the session from the answer. Oracle failures and
// unsupported answers both leave the stage unchanged and re-prompt.
func (t *Tracker) detectAndConfigure(ctx context.Context, ev telephony.Event) {
	t.stats.detections.Add(1)
	t.logger.Info("attempting language detection", "call_id", ev.CallID, "text", ev.Transcription)

	detected, err := oracle.DetectLanguage(ctx, t.oracle, ev.Transcription)
	if err != nil {
		t.stats.oracleFailures.Add(1)
		t.logger.Error("language detection failed", "call_id", ev.CallID, "error", err)
		t.speak(ctx, ev.CallID, telephony.ChannelAssistant, detectTroublePrompt)
		t.notify(Activity{Kind: "detection-failed", CallID: ev.CallID})
		return
	}

	lang, ok := language.Match(detected)
	if !ok {
		t.logger.Warn("detected language not supported", "call_id", ev.CallID, "detected", detected)
		t.speak(ctx, ev.CallID, telephony.ChannelAssistant, detectUnsupportedPrompt)
		t.notify(Activity{Kind: "detection-unsupported", CallID: ev.CallID, Text: detected})
		return
	}

	partner := language.Complement(lang)
	t.store.Update(ev.CallID, func(s *session.Session) {
		s.CustomerLanguage = lang
		s.AssistantLanguage = partner
		s.Stage = session.StageTranslation
		s.Touch()
	})
	t.logger.Info("language detected", "call_id", ev.CallID, "customer", lang, "assistant", partner)

	t.speakf(ctx, ev.CallID, telephony.ChannelAssistant, detectedPromptFmt, lang, partner)
	t.notify(Activity{Kind: "languages-set", CallID: ev.CallID, Text: lang + " / " + partner})
}

// translateAndSpeak translates the utterance from the speaker's
// language to the other party's and plays it on the opposite channel.
// An oracle failure drops the turn: nothing is spoken to either party.
func (t *Tracker) translateAndSpeak(ctx context.Context, ev telephony.Event, snap session.Session) {
	// Anything that is not the customer counts as the assistant side,
	// for the language pair and for the speak target alike.
	source, target := snap.CustomerLanguage, snap.AssistantLanguage
	if ev.Channel != telephony.ChannelCustomer {
		source, target = target, source
	}

	// Activity is recorded for this turn whether or not the oracle
	// succeeds; the inactivity sweep measures call liveness, not
	// translation success.
	defer t.store.Update(ev.CallID, func(s *session.Session) { s.Touch() })

	t.logger.Info("translating",
		"call_id", ev.CallID,
		"source", source,
		"target", target,
		"text", ev.Transcription,
	)

	translated, err := oracle.Translate(ctx, t.oracle, ev.Transcription, source, target)
	if err != nil {
		t.stats.oracleFailures.Add(1)
		t.logger.Error("translation failed, dropping turn", "call_id", ev.CallID, "error", err)
		t.notify(Activity{Kind: "translation-dropped", CallID: ev.CallID, Channel: ev.Channel})
		return
	}

	t.stats.translations.Add(1)
	opposite := ev.Channel.Opposite()
	t.speak(ctx, ev.CallID, opposite, translated)
	t.notify(Activity{Kind: "translation", CallID: ev.CallID, Channel: opposite, Text: translated})
}

// speak delivers one utterance. Sink errors are logged and dropped.
func (t *Tracker) speak(ctx context.Context, callID string, ch telephony.Channel, text string) {
	err := t.speaker.Speak(ctx, callID, telephony.SpeakRequest{Channel: ch, Text: text})
	if err != nil {
		t.stats.speakFailures.Add(1)
		t.logger.Error("speak failed", "call_id", callID, "channel", ch, "error", err)
	}
}

func (t *Tracker) speakf(ctx context.Context, callID string, ch telephony.Channel, format string, args ...any) {
	t.speak(ctx, callID, ch, fmt.Sprintf(format, args...))
}

func (t *Tracker) notify(a Activity) {
	if t.OnActivity != nil {
		t.OnActivity(a)
	}
}
