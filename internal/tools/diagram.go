package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"github.com/noteflow/noteflow/internal/config"
	"github.com/noteflow/noteflow/internal/llm"
	"github.com/noteflow/noteflow/internal/metrics"
	"github.com/noteflow/noteflow/internal/render"
)

func diagramTool() mcp.Tool {
	return mcp.NewTool("diagram",
		mcp.WithDescription("Express a process or structure as a Mermaid diagram, from a description, a transcript or an audio recording."),
		mcp.WithString("description",
			mcp.Description("What the diagram should show; wins over transcript and audio_path."),
		),
		mcp.WithString("transcript",
			mcp.Description("Transcript to derive the diagram from."),
		),
		mcp.WithString("audio_path",
			mcp.Description("Audio file to transcribe and derive the diagram from."),
		),
		mcp.WithString("diagram_type",
			mcp.Description("Mermaid diagram kind, e.g. flowchart, sequenceDiagram, classDiagram. Defaults to flowchart."),
		),
		mcp.WithBoolean("render_image",
			mcp.Description("Also produce a PNG image through the renderer service when available."),
		),
	)
}

func (d Deps) handleDiagram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := jobLogger("diagram")
	res := d.runDiagram(ctx, req, log)
	metrics.RecordTool("diagram", res.Status == statusSuccess)
	if res.Status != statusSuccess {
		log.Error().Str("message", res.Message).Msg("tool failed")
	}
	return res.call(), nil
}

func (d Deps) runDiagram(ctx context.Context, req mcp.CallToolRequest, log zerolog.Logger) Result {
	content := req.GetString("description", "")
	if content == "" {
		var err error
		content, err = d.resolveContent(ctx, req, log)
		if err != nil {
			return failure(err)
		}
	}
	kind := req.GetString("diagram_type", "")
	code, err := d.Complete(ctx, llm.Diagram(content, kind))
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			return failure(fmt.Errorf("diagram requires a language model: %w", err))
		}
		return failure(fmt.Errorf("diagram generation: %w", err))
	}
	code = stripFence(code)
	if code == "" {
		return failure(errors.New("diagram generation returned empty output"))
	}

	file, err := d.Writer.WriteMarkdown("diagram", "```mermaid\n"+code+"\n```\n")
	if err != nil {
		return failure(err)
	}

	msg := fmt.Sprintf("diagram saved to %s", file)
	imageFile := ""
	wantImage := req.GetBool("render_image",
		config.ToolOptionBool(d.Options, "diagram", "render_image", false))
	if wantImage {
		var note string
		imageFile, note = d.renderImage(ctx, "diagram", render.KindDiagram, code, log)
		if note != "" {
			msg += "; " + note
		}
	}
	log.Info().Str("file", file).Str("image", imageFile).Msg("diagram saved")
	return Result{
		Status:       statusSuccess,
		Message:      msg,
		MarkdownFile: file,
		ImageFile:    imageFile,
	}
}

// stripFence removes a surrounding markdown code fence some models insist on
// adding despite instructions.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	if len(lines) < 2 {
		return s
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
