package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	sdkserver "github.com/mark3labs/mcp-go/server"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noteflow/noteflow/internal/artifact"
	"github.com/noteflow/noteflow/internal/asr"
	"github.com/noteflow/noteflow/internal/cache"
	"github.com/noteflow/noteflow/internal/config"
	"github.com/noteflow/noteflow/internal/llm"
	"github.com/noteflow/noteflow/internal/logx"
	"github.com/noteflow/noteflow/internal/render"
	"github.com/noteflow/noteflow/internal/secret"
	"github.com/noteflow/noteflow/internal/server"
	"github.com/noteflow/noteflow/internal/tools"
)

var (
	version   = "dev"
	buildSHA  = "unknown"
	buildDate = "unknown"
)

func main() {
	_ = godotenv.Load()

	showVersion := flag.Bool("version", false, "print version and exit")
	var cfg config.Config
	cfg.SetDefaults()
	cfg.ApplyEnv()
	cfg.BindFlags()
	flag.Usage = func() {
		_, _ = fmt.Fprintf(flag.CommandLine.Output(), "noteflow version=%s sha=%s date=%s\n\n", version, buildSHA, buildDate)
		flag.PrintDefaults()
	}
	flag.Parse()
	if *showVersion {
		fmt.Printf("noteflow version=%s sha=%s date=%s\n", version, buildSHA, buildDate)
		return
	}

	if cfg.ConfigFile != "" {
		if err := cfg.LoadFile(cfg.ConfigFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			logx.Log.Fatal().Err(err).Str("path", cfg.ConfigFile).Msg("load config")
		}
	}
	logx.Configure(cfg.LogLevel)
	logx.Log.Info().
		Str("transport", cfg.Transport).
		Str("output_dir", cfg.OutputDir).
		Str("asr_url", cfg.ASR.URL).
		Str("asr_key", secret.Mask(cfg.ASR.AccessKeySecret)).
		Str("renderer_url", cfg.Renderer.URL).
		Msg("starting noteflow")

	deps := buildDeps(cfg)
	mcpSrv := server.NewMCP(deps, cfg.ToolEnabled, version)

	switch cfg.Transport {
	case "http":
		serveHTTP(cfg, mcpSrv)
	case "stdio":
		if err := sdkserver.ServeStdio(mcpSrv); err != nil {
			logx.Log.Fatal().Err(err).Msg("stdio server")
		}
	default:
		logx.Log.Fatal().Str("transport", cfg.Transport).Msg("unknown transport, want stdio or http")
	}
}

func buildDeps(cfg config.Config) tools.Deps {
	asrClient := asr.New(asr.Config{
		BaseURL:         cfg.ASR.URL,
		AppID:           cfg.ASR.AppID,
		AccessKeyID:     cfg.ASR.AccessKeyID,
		AccessKeySecret: cfg.ASR.AccessKeySecret,
		Language:        cfg.ASR.Language,
		MaxRetries:      cfg.ASR.MaxRetries,
		PollInterval:    cfg.ASR.PollInterval,
	})

	var store cache.Store
	if cfg.RedisAddr != "" {
		rs, err := cache.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			logx.Log.Fatal().Err(err).Msg("connect redis")
		}
		logx.Log.Info().Str("addr", cfg.RedisAddr).Msg("using redis transcript cache")
		store = rs
	} else {
		store = cache.NewMemoryStore()
	}

	complete := llm.Chain(
		llm.SamplingCompleter(cfg.LLM.MaxTokens),
		llm.OpenAICompleter(llm.OpenAIConfig{
			BaseURL:   cfg.LLM.BaseURL,
			APIKey:    cfg.LLM.APIKey,
			Model:     cfg.LLM.Model,
			MaxTokens: cfg.LLM.MaxTokens,
		}),
	)

	var renderer tools.Renderer
	if cfg.Renderer.URL != "" {
		renderer = render.New(cfg.Renderer.URL, cfg.Renderer.Theme, cfg.Renderer.Timeout)
	}

	return tools.Deps{
		ASR:      asrClient,
		Complete: complete,
		Renderer: renderer,
		Writer:   artifact.NewWriter(cfg.OutputDir),
		Cache:    store,
		CacheTTL: cfg.CacheTTL,
		Options:  cfg.ToolOptions,
	}
}

func serveHTTP(cfg config.Config, mcpSrv *sdkserver.MCPServer) {
	handler := server.NewHTTPHandler(mcpSrv, cfg.AllowedOrigins)
	srv := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Port), Handler: handler}

	var metricsSrv *http.Server
	if cfg.MetricsAddr != fmt.Sprintf(":%d", cfg.Port) {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		metricsSrv = &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logx.Log.Error().Err(err).Msg("metrics server")
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logx.Log.Warn().Msg("termination requested")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		if metricsSrv != nil {
			_ = metricsSrv.Shutdown(shutdownCtx)
		}
	}()

	logx.Log.Info().Int("port", cfg.Port).Msg("http server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Log.Fatal().Err(err).Msg("http server")
	}
}
