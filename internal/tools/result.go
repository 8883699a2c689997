package tools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

// Result is the structured payload every tool call returns to the host.
// Errors never propagate as protocol faults; they come back as an error
// status with a human-readable message.
type Result struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	MarkdownFile string `json:"markdown_file,omitempty"`
	ImageFile    string `json:"image_file,omitempty"`
	OrderID      string `json:"order_id,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

func failure(err error) Result {
	return Result{Status: statusError, Message: err.Error()}
}

// call serializes the result for the MCP transport.
func (r Result) call() *mcp.CallToolResult {
	b, err := json.Marshal(r)
	if err != nil {
		return mcp.NewToolResultText(`{"status":"error","message":"internal: result not serializable"}`)
	}
	return mcp.NewToolResultText(string(b))
}
