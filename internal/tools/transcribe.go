package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/noteflow/noteflow/internal/asr"
	"github.com/noteflow/noteflow/internal/llm"
	"github.com/noteflow/noteflow/internal/metrics"
)

func transcribeTool() mcp.Tool {
	return mcp.NewTool("transcribe",
		mcp.WithDescription("Transcribe a local audio recording (wav, mp3 or m4a) into a speaker-tagged Markdown transcript."),
		mcp.WithString("audio_path",
			mcp.Required(),
			mcp.Description("Path to the audio file on this machine."),
		),
		mcp.WithBoolean("optimize",
			mcp.Description("Clean up the raw transcript with the language model (punctuation, filler words)."),
		),
	)
}

func (d Deps) handleTranscribe(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := jobLogger("transcribe")
	res := d.runTranscribe(ctx, req, log)
	metrics.RecordTool("transcribe", res.Status == statusSuccess)
	if res.Status != statusSuccess {
		log.Error().Str("message", res.Message).Msg("tool failed")
	}
	return res.call(), nil
}

func (d Deps) runTranscribe(ctx context.Context, req mcp.CallToolRequest, log zerolog.Logger) Result {
	path, err := req.RequireString("audio_path")
	if err != nil {
		return failure(err)
	}
	tr, err := d.transcribeCached(ctx, path, log)
	if err != nil {
		return failure(err)
	}

	text := tr.Text
	note := ""
	if req.GetBool("optimize", false) && text != "" {
		out, err := d.Complete(ctx, llm.OptimizeTranscript(text))
		if err != nil {
			if errors.Is(err, llm.ErrUnavailable) {
				return failure(fmt.Errorf("transcript optimization requested but %w", err))
			}
			return failure(fmt.Errorf("transcript optimization: %w", err))
		}
		if out = strings.TrimSpace(out); out != "" {
			text = out
			note = " (optimized)"
		}
	}

	md := transcriptMarkdown(path, text, tr)
	file, err := d.Writer.WriteMarkdown("transcript", md)
	if err != nil {
		return failure(err)
	}
	log.Info().Str("order_id", tr.OrderID).Str("file", file).Msg("transcript saved")
	return Result{
		Status:       statusSuccess,
		Message:      fmt.Sprintf("transcript saved to %s%s", file, note),
		MarkdownFile: file,
		OrderID:      tr.OrderID,
	}
}

// transcriptMarkdown lays out the transcript artifact: a small metadata
// header followed by one speaker line per paragraph.
func transcriptMarkdown(source, text string, tr *asr.Transcription) string {
	var b strings.Builder
	b.WriteString("# Transcript\n\n")
	fmt.Fprintf(&b, "- Source: `%s`\n", source)
	if tr.OrderID != "" {
		fmt.Fprintf(&b, "- Order: `%s`\n", tr.OrderID)
	}
	fmt.Fprintf(&b, "- Segments: %d\n", len(tr.Segments))
	b.WriteString("\n---\n\n")
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	return b.String()
}
