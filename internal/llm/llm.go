// Package llm abstracts text generation behind a single function type. The
// production completer asks the MCP host for a sampling round-trip; a direct
// OpenAI-compatible endpoint can serve as fallback for hosts without
// sampling support.
package llm

import (
	"context"
	"errors"
)

// Chat roles. They mirror the usual chat-completion vocabulary.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat-style message handed to the completer.
type Message struct {
	Role    string
	Content string
}

// CompleteFunc generates text from a chat-style message list. It is the
// plugin's only view of the language model.
type CompleteFunc func(ctx context.Context, msgs []Message) (string, error)

// ErrUnavailable reports that no language model can serve the request.
// Tools abort with an explicit error when every completer returns it.
var ErrUnavailable = errors.New("no language model available")

// Chain tries completers in order, moving on only while they report
// ErrUnavailable. Any other error, or a success, is final.
func Chain(completers ...CompleteFunc) CompleteFunc {
	return func(ctx context.Context, msgs []Message) (string, error) {
		for _, c := range completers {
			if c == nil {
				continue
			}
			out, err := c(ctx, msgs)
			if errors.Is(err, ErrUnavailable) {
				continue
			}
			return out, err
		}
		return "", ErrUnavailable
	}
}
