package config

import "strconv"

// ToolOption returns a per-tool option value or def when absent.
// Options live under tool_options.<tool>.<key> in the config file.
func ToolOption(opts map[string]map[string]string, tool, key, def string) string {
	if opts == nil {
		return def
	}
	if to, ok := opts[tool]; ok {
		if v, ok := to[key]; ok && v != "" {
			return v
		}
	}
	return def
}

// ToolOptionBool parses a per-tool option as bool, falling back to def on
// error or absence.
func ToolOptionBool(opts map[string]map[string]string, tool, key string, def bool) bool {
	v := ToolOption(opts, tool, key, "")
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// ToolOptionInt parses a per-tool option as int, falling back to def on
// error or absence.
func ToolOptionInt(opts map[string]map[string]string, tool, key string, def int) int {
	v := ToolOption(opts, tool, key, "")
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return def
}
