package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ASRConfig holds credentials and tuning for the transcription vendor API.
type ASRConfig struct {
	URL             string        `yaml:"url"`
	AppID           string        `yaml:"app_id"`
	AccessKeyID     string        `yaml:"access_key_id"`
	AccessKeySecret string        `yaml:"access_key_secret"`
	Language        string        `yaml:"language"`
	MaxRetries      int           `yaml:"max_retries"`
	PollInterval    time.Duration `yaml:"poll_interval"`
}

// LLMConfig configures the optional direct completion endpoint used when the
// host does not support sampling. Any OpenAI-compatible server works.
type LLMConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int    `yaml:"max_tokens"`
}

// RendererConfig points at the optional markdown/diagram rasterizer service.
type RendererConfig struct {
	URL     string        `yaml:"url"`
	Theme   string        `yaml:"theme"`
	Timeout time.Duration `yaml:"timeout"`
}

// Config holds configuration for the noteflow plugin process.
type Config struct {
	ConfigFile     string                       `yaml:"-"`
	LogLevel       string                       `yaml:"log_level"`
	Transport      string                       `yaml:"transport"`
	Port           int                          `yaml:"port"`
	MetricsAddr    string                       `yaml:"metrics_addr"`
	AllowedOrigins []string                     `yaml:"allowed_origins"`
	OutputDir      string                       `yaml:"output_dir"`
	RedisAddr      string                       `yaml:"redis_addr"`
	CacheTTL       time.Duration                `yaml:"cache_ttl"`
	Tools          []string                     `yaml:"tools"`
	ToolOptions    map[string]map[string]string `yaml:"tool_options"`
	ASR            ASRConfig                    `yaml:"asr"`
	LLM            LLMConfig                    `yaml:"llm"`
	Renderer       RendererConfig               `yaml:"renderer"`
}

// SetDefaults initializes c with built-in defaults.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Transport == "" {
		c.Transport = "stdio"
	}
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.MetricsAddr == "" {
		c.MetricsAddr = fmt.Sprintf(":%d", c.Port)
	}
	if c.OutputDir == "" {
		c.OutputDir = "notes"
	}
	if c.CacheTTL == 0 {
		c.CacheTTL = 24 * time.Hour
	}
	if c.Tools == nil {
		c.Tools = []string{"*"}
	}
	if c.ASR.Language == "" {
		c.ASR.Language = "cn"
	}
	if c.ASR.MaxRetries == 0 {
		c.ASR.MaxRetries = 100
	}
	if c.ASR.PollInterval == 0 {
		c.ASR.PollInterval = 10 * time.Second
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 4096
	}
	if c.Renderer.Timeout == 0 {
		c.Renderer.Timeout = 30 * time.Second
	}
}

// ApplyEnv overlays environment variables onto the current config values.
func (c *Config) ApplyEnv() {
	if v := getEnv("CONFIG_FILE", ""); v != "" {
		c.ConfigFile = v
	}
	if v := getEnv("LOG_LEVEL", ""); v != "" {
		c.LogLevel = v
	}
	if v := getEnv("TRANSPORT", ""); v != "" {
		c.Transport = v
	}
	if v := getEnv("PORT", ""); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Port = n
		}
	}
	if v := getEnv("METRICS_PORT", ""); v != "" {
		if strings.Contains(v, ":") {
			c.MetricsAddr = v
		} else {
			c.MetricsAddr = ":" + v
		}
	}
	if v := getEnv("ALLOWED_ORIGINS", ""); v != "" {
		c.AllowedOrigins = splitComma(v)
	}
	if v := getEnv("OUTPUT_DIR", ""); v != "" {
		c.OutputDir = v
	}
	if v := getEnv("REDIS_ADDR", ""); v != "" {
		c.RedisAddr = v
	}
	if v := getEnv("CACHE_TTL", ""); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.CacheTTL = d
		}
	}
	if v := getEnv("TOOLS", ""); v != "" {
		c.Tools = splitComma(v)
	}
	if v := getEnv("ASR_URL", ""); v != "" {
		c.ASR.URL = v
	}
	if v := getEnv("ASR_APP_ID", ""); v != "" {
		c.ASR.AppID = v
	}
	if v := getEnv("ASR_ACCESS_KEY_ID", ""); v != "" {
		c.ASR.AccessKeyID = v
	}
	if v := getEnv("ASR_ACCESS_KEY_SECRET", ""); v != "" {
		c.ASR.AccessKeySecret = v
	}
	if v := getEnv("ASR_LANGUAGE", ""); v != "" {
		c.ASR.Language = v
	}
	if v := getEnv("LLM_BASE_URL", ""); v != "" {
		c.LLM.BaseURL = v
	}
	if v := getEnv("LLM_API_KEY", ""); v != "" {
		c.LLM.APIKey = v
	}
	if v := getEnv("LLM_MODEL", ""); v != "" {
		c.LLM.Model = v
	}
	if v := getEnv("RENDERER_URL", ""); v != "" {
		c.Renderer.URL = v
	}
	if v := getEnv("RENDERER_THEME", ""); v != "" {
		c.Renderer.Theme = v
	}
}

// BindFlags binds command line flags using the current config values as
// defaults so main can call flag.Parse().
func (c *Config) BindFlags() {
	flag.StringVar(&c.ConfigFile, "config", c.ConfigFile, "config file path")
	flag.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log verbosity (all, debug, info, warn, error, fatal, none)")
	flag.StringVar(&c.Transport, "transport", c.Transport, "host transport: stdio or http")
	flag.IntVar(&c.Port, "port", c.Port, "HTTP listen port when transport is http")
	flag.StringVar(&c.MetricsAddr, "metrics-port", c.MetricsAddr, "Prometheus metrics listen address or port; defaults to the value of --port")
	flag.StringVar(&c.OutputDir, "output-dir", c.OutputDir, "directory for generated markdown and image artifacts")
	flag.StringVar(&c.RedisAddr, "redis-addr", c.RedisAddr, "redis connection URL for the transcript cache; empty uses in-process memory")
	flag.DurationVar(&c.CacheTTL, "cache-ttl", c.CacheTTL, "how long cached transcripts stay valid")
	flag.Func("tools", "comma separated list of enabled tools, or *", func(v string) error {
		c.Tools = splitComma(v)
		return nil
	})
	flag.Func("allowed-origins", "comma separated list of allowed CORS origins", func(v string) error {
		c.AllowedOrigins = splitComma(v)
		return nil
	})
	flag.StringVar(&c.ASR.URL, "asr-url", c.ASR.URL, "transcription service base URL")
	flag.StringVar(&c.ASR.AppID, "asr-app-id", c.ASR.AppID, "transcription service application id")
	flag.StringVar(&c.ASR.AccessKeyID, "asr-access-key-id", c.ASR.AccessKeyID, "transcription service access key id")
	flag.StringVar(&c.ASR.AccessKeySecret, "asr-access-key-secret", c.ASR.AccessKeySecret, "transcription service signing secret; empty sends unsigned requests")
	flag.StringVar(&c.LLM.BaseURL, "llm-base-url", c.LLM.BaseURL, "OpenAI-compatible completion endpoint used when host sampling is unavailable")
	flag.StringVar(&c.LLM.Model, "llm-model", c.LLM.Model, "model name for the fallback completion endpoint")
	flag.StringVar(&c.Renderer.URL, "renderer-url", c.Renderer.URL, "renderer service base URL; empty disables image output")
}

// LoadFile overlays values from a YAML file onto c.
func (c *Config) LoadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, c)
}

// ToolEnabled reports whether the named tool is active under the Tools list.
// A literal "*" enables everything.
func (c *Config) ToolEnabled(name string) bool {
	for _, t := range c.Tools {
		if t == "*" || t == name {
			return true
		}
	}
	return false
}

func splitComma(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}
