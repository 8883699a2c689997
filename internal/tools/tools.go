// Package tools implements the four meeting-notes tools the plugin exposes
// to its MCP host: transcribe, summarize, mindmap and diagram. Each tool is
// a thin orchestration of the transcription client, the host's language
// model and the optional renderer service.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/noteflow/noteflow/internal/artifact"
	"github.com/noteflow/noteflow/internal/asr"
	"github.com/noteflow/noteflow/internal/audio"
	"github.com/noteflow/noteflow/internal/cache"
	"github.com/noteflow/noteflow/internal/config"
	"github.com/noteflow/noteflow/internal/llm"
	"github.com/noteflow/noteflow/internal/logx"
	"github.com/noteflow/noteflow/internal/metrics"
	"github.com/noteflow/noteflow/internal/render"
)

// Transcriber runs the full audio-to-transcript pipeline. *asr.Client is the
// production implementation.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (*asr.Transcription, error)
}

// Renderer rasterizes Markdown or Mermaid source into base64-encoded PNGs.
// *render.Client is the production implementation; nil disables images.
type Renderer interface {
	Healthy(ctx context.Context) error
	RenderMarkdown(ctx context.Context, markdown string, opts render.Options) (string, error)
	RenderDiagram(ctx context.Context, code string, opts render.Options) (string, error)
}

// Deps bundles the collaborators the tool handlers share. All fields are
// set once at startup; handlers never mutate them, so concurrent tool calls
// are safe.
type Deps struct {
	ASR      Transcriber
	Complete llm.CompleteFunc
	Renderer Renderer
	Writer   *artifact.Writer
	Cache    cache.Store
	CacheTTL time.Duration
	Options  map[string]map[string]string
}

// Register adds every enabled tool to the MCP server.
func Register(s *server.MCPServer, d Deps, enabled func(string) bool) {
	if enabled("transcribe") {
		s.AddTool(transcribeTool(), d.handleTranscribe)
	}
	if enabled("summarize") {
		s.AddTool(summarizeTool(), d.handleSummarize)
	}
	if enabled("mindmap") {
		s.AddTool(mindmapTool(), d.handleMindmap)
	}
	if enabled("diagram") {
		s.AddTool(diagramTool(), d.handleDiagram)
	}
}

// jobLogger returns a logger tagged with the tool name and a fresh job id so
// interleaved invocations stay distinguishable.
func jobLogger(tool string) zerolog.Logger {
	return logx.Log.With().Str("tool", tool).Str("job", uuid.NewString()[:8]).Logger()
}

// transcribeCached resolves a transcription for path, serving from the
// transcript cache when an identical file was processed before.
func (d Deps) transcribeCached(ctx context.Context, path string, log zerolog.Logger) (*asr.Transcription, error) {
	if err := audio.Validate(path); err != nil {
		return nil, err
	}
	var key string
	if d.Cache != nil {
		fp, err := audio.Fingerprint(path)
		if err == nil {
			key = fp
			if b, ok, err := d.Cache.Get(ctx, key); err == nil && ok {
				var tr asr.Transcription
				if json.Unmarshal(b, &tr) == nil {
					metrics.RecordCacheLookup(true)
					log.Info().Str("order_id", tr.OrderID).Msg("transcript served from cache")
					return &tr, nil
				}
			}
			metrics.RecordCacheLookup(false)
		}
	}
	tr, err := d.ASR.Transcribe(ctx, path)
	if err != nil {
		return nil, err
	}
	if d.Cache != nil && key != "" {
		if b, err := json.Marshal(tr); err == nil {
			if err := d.Cache.Set(ctx, key, b, d.CacheTTL); err != nil {
				log.Warn().Err(err).Msg("transcript cache write failed")
			}
		}
	}
	return tr, nil
}

// resolveContent returns the text a tool should work on: an inline
// transcript argument wins, otherwise the audio file is transcribed.
func (d Deps) resolveContent(ctx context.Context, req mcp.CallToolRequest, log zerolog.Logger) (string, error) {
	if tr := req.GetString("transcript", ""); tr != "" {
		return tr, nil
	}
	path := req.GetString("audio_path", "")
	if path == "" {
		return "", errors.New("provide either audio_path or transcript")
	}
	tr, err := d.transcribeCached(ctx, path, log)
	if err != nil {
		return "", err
	}
	return tr.Text, nil
}

// renderImage rasterizes src through the renderer and stores the PNG.
// A missing or unreachable renderer degrades to Markdown-only output: the
// returned note explains the absence and err stays nil for everything the
// caller should tolerate.
func (d Deps) renderImage(ctx context.Context, tool, kind, src string, log zerolog.Logger) (imagePath, note string) {
	if d.Renderer == nil {
		return "", "no renderer configured, image skipped"
	}
	if err := d.Renderer.Healthy(ctx); err != nil {
		log.Warn().Err(err).Msg("renderer unavailable, falling back to markdown only")
		return "", "renderer unavailable, image skipped"
	}
	opts := render.Options{
		Width:  config.ToolOptionInt(d.Options, tool, "image_width", 0),
		Height: config.ToolOptionInt(d.Options, tool, "image_height", 0),
	}
	var (
		img string
		err error
	)
	if kind == render.KindDiagram {
		img, err = d.Renderer.RenderDiagram(ctx, src, opts)
	} else {
		img, err = d.Renderer.RenderMarkdown(ctx, src, opts)
	}
	if err != nil {
		log.Warn().Err(err).Msg("render failed, falling back to markdown only")
		return "", "rendering failed, image skipped"
	}
	path, err := d.Writer.WritePNG(tool, img)
	if err != nil {
		log.Warn().Err(err).Msg("image write failed")
		return "", "image could not be written, image skipped"
	}
	return path, ""
}
