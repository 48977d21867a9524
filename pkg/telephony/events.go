package telephony

// EventType discriminates inbound webhook events.
type EventType string

const (
	// EventCallStart signals a new active call.
	EventCallStart EventType = "call-start"

	// EventCallEnd signals the call hung up.
	EventCallEnd EventType = "call-end"

	// EventTranscription carries one transcribed utterance.
	EventTranscription EventType = "transcriber-response"
)

// Event is the JSON body the provider posts to the webhook.
// Channel and Transcription are only present on transcriber-response.
type Event struct {
	Type          EventType `json:"type"`
	CallID        string    `json:"callId"`
	Channel       Channel   `json:"channel,omitempty"`
	Transcription string    `json:"transcription,omitempty"`
}
