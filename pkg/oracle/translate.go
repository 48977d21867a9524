package oracle

import (
	"context"
	"fmt"
	"strings"
)

// detectInstruction asks the model to name the spoken language in English,
// the fixed reference language all prompts use.
const detectInstruction = `Detect the language of the following text. Respond with only the language name in English, e.g., "English", "Spanish", "French", etc.`

// DetectLanguage asks the provider to name the language of utterance.
// The trimmed free-text answer is returned as-is; mapping it onto the
// supported catalog is the caller's job.
func DetectLanguage(ctx context.Context, p Provider, utterance string) (string, error) {
	resp, err := p.Chat(ctx, &ChatRequest{
		Messages: []Message{
			NewSystemMessage(detectInstruction),
			NewUserMessage(utterance),
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}

// Translate asks the provider to translate text from source to target,
// returning only the translation.
func Translate(ctx context.Context, p Provider, text, source, target string) (string, error) {
	instruction := fmt.Sprintf("Translate from %s to %s. Provide only the translation, no explanations.", source, target)

	resp, err := p.Chat(ctx, &ChatRequest{
		Messages: []Message{
			NewSystemMessage(instruction),
			NewUserMessage(text),
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Content), nil
}
