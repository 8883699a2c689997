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

func mindmapTool() mcp.Tool {
	return mcp.NewTool("mindmap",
		mcp.WithDescription("Turn a meeting into a mindmap: a Markdown outline, optionally rendered to a PNG image."),
		mcp.WithString("audio_path",
			mcp.Description("Path to the audio file; ignored when transcript is given."),
		),
		mcp.WithString("transcript",
			mcp.Description("Existing transcript or notes to map instead of transcribing audio."),
		),
		mcp.WithBoolean("render_image",
			mcp.Description("Also produce a PNG image through the renderer service when available."),
		),
	)
}

func (d Deps) handleMindmap(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	log := jobLogger("mindmap")
	res := d.runMindmap(ctx, req, log)
	metrics.RecordTool("mindmap", res.Status == statusSuccess)
	if res.Status != statusSuccess {
		log.Error().Str("message", res.Message).Msg("tool failed")
	}
	return res.call(), nil
}

func (d Deps) runMindmap(ctx context.Context, req mcp.CallToolRequest, log zerolog.Logger) Result {
	content, err := d.resolveContent(ctx, req, log)
	if err != nil {
		return failure(err)
	}
	outline, err := d.Complete(ctx, llm.Mindmap(content))
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			return failure(fmt.Errorf("mindmap requires a language model: %w", err))
		}
		return failure(fmt.Errorf("mindmap generation: %w", err))
	}
	outline = strings.TrimSpace(outline)
	if outline == "" {
		return failure(errors.New("mindmap generation returned empty output"))
	}

	file, err := d.Writer.WriteMarkdown("mindmap", outline+"\n")
	if err != nil {
		return failure(err)
	}

	msg := fmt.Sprintf("mindmap saved to %s", file)
	imageFile := ""
	wantImage := req.GetBool("render_image",
		config.ToolOptionBool(d.Options, "mindmap", "render_image", false))
	if wantImage {
		var note string
		imageFile, note = d.renderImage(ctx, "mindmap", render.KindMarkdown, outline, log)
		if note != "" {
			msg += "; " + note
		}
	}
	log.Info().Str("file", file).Str("image", imageFile).Msg("mindmap saved")
	return Result{
		Status:       statusSuccess,
		Message:      msg,
		MarkdownFile: file,
		ImageFile:    imageFile,
	}
}
