// Package telephony defines the contract with the external call
// provider: the webhook event shapes it delivers, the speech delivery
// interface used to play synthesized text to one side of a call, and
// an HTTP client for a Vapi-style call control API.
package telephony

import "context"

// Channel identifies which party in a two-party call produced or
// receives an utterance.
type Channel string

const (
	// ChannelCustomer is the calling party.
	ChannelCustomer Channel = "customer"

	// ChannelAssistant is the opposite party.
	ChannelAssistant Channel = "assistant"
)

// Opposite returns the other party's channel.
func (c Channel) Opposite() Channel {
	if c == ChannelCustomer {
		return ChannelAssistant
	}
	return ChannelCustomer
}

// Valid reports whether c is a known channel.
func (c Channel) Valid() bool {
	return c == ChannelCustomer || c == ChannelAssistant
}

// SpeakRequest is one utterance to synthesize and play to one side
// of an active call.
type SpeakRequest struct {
	// Channel is the party that hears the utterance.
	Channel Channel `json:"channel"`

	// Text is spoken verbatim.
	Text string `json:"text"`
}

// Speaker delivers synthesized speech into an active call.
// Callers treat delivery as fire-and-forget: errors are logged,
// never consulted for control flow.
type Speaker interface {
	// Speak plays text to one channel of the call.
	Speak(ctx context.Context, callID string, req SpeakRequest) error
}
