package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/noteflow/noteflow/internal/llm"
	"github.com/noteflow/noteflow/internal/metrics"
)

func summarizeTool() mcp.Tool {
	return mcp.NewTool("summarize",
		mcp.WithDescription("Summarize a meeting into structured Markdown notes, from an audio recording or an existing transcript."),
		mcp.WithString("audio_path",
			mcp.Description("Path to the audio file; ignored when transcript is given."),
		),
		mcp.WithString("transcript",
			mcp.Description("Existing transcript text to summarize instead of transcribing audio."),
		),
		mcp.WithString("title",
			mcp.Description("Optional meeting title used as the summary heading."),
		),
	)
}

func (d Deps) handleSummarize(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := jobLogger("summarize")
	res := d.runSummarize(ctx, req, log)
	metrics.RecordTool("summarize", res.Status == statusSuccess)
	if res.Status != statusSuccess {
		log.Error().Str("message", res.Message).Msg("tool failed")
	}
	return res.call(), nil
}

func (d Deps) runSummarize(ctx context.Context, req mcp.CallToolRequest, log zerolog.Logger) Result {
	content, err := d.resolveContent(ctx, req, log)
	if err != nil {
		return failure(err)
	}
	title := req.GetString("title", "")
	summary, err := d.Complete(ctx, llm.MeetingSummary(title, content))
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			return failure(fmt.Errorf("summarize requires a language model: %w", err))
		}
		return failure(fmt.Errorf("summary generation: %w", err))
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return failure(errors.New("summary generation returned empty output"))
	}

	file, err := d.Writer.WriteMarkdown("summary", summary+"\n")
	if err != nil {
		return failure(err)
	}
	log.Info().Str("file", file).Msg("summary saved")
	return Result{
		Status:       statusSuccess,
		Message:      fmt.Sprintf("summary saved to %s", file),
		MarkdownFile: file,
	}
}
