package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// SamplingCompleter returns a completer that forwards the request to the MCP
// host through a sampling round-trip. It only works inside a tool handler,
// where the server is reachable from the request context; hosts that did not
// declare sampling support make it report ErrUnavailable so a fallback can
// take over.
func SamplingCompleter(maxTokens int) CompleteFunc {
	if maxTokens <= 0 {
		maxTokens = 4096
	}
	return func(ctx context.Context, msgs []Message) (string, error) {
		srv := server.ServerFromContext(ctx)
		if srv == nil {
			return "", ErrUnavailable
		}
		req := mcp.CreateMessageRequest{
			CreateMessageParams: mcp.CreateMessageParams{
				MaxTokens: maxTokens,
			},
		}
		for _, m := range msgs {
			switch m.Role {
			case RoleSystem:
				if req.SystemPrompt != "" {
					req.SystemPrompt += "\n\n"
				}
				req.SystemPrompt += m.Content
			case RoleAssistant:
				req.Messages = append(req.Messages, mcp.SamplingMessage{
					Role:    mcp.RoleAssistant,
					Content: mcp.TextContent{Type: "text", Text: m.Content},
				})
			default:
				req.Messages = append(req.Messages, mcp.SamplingMessage{
					Role:    mcp.RoleUser,
					Content: mcp.TextContent{Type: "text", Text: m.Content},
				})
			}
		}
		res, err := srv.RequestSampling(ctx, req)
		if err != nil {
			if strings.Contains(err.Error(), "does not support sampling") {
				return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
			}
			return "", fmt.Errorf("host sampling: %w", err)
		}
		return textFromContent(res.Content)
	}
}

func textFromContent(content any) (string, error) {
	switch c := content.(type) {
	case mcp.TextContent:
		return c.Text, nil
	case *mcp.TextContent:
		return c.Text, nil
	case string:
		return c, nil
	default:
		return "", fmt.Errorf("host sampling returned non-text content %T", content)
	}
}
