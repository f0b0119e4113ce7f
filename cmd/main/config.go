package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/movement-generator/pkg/render"
	"github.com/natefinch/atomic"
	"github.com/spf13/viper"
)

// Config is the top-level configuration for a render.
type Config struct {
	TemplatePath string           `json:"template_path" mapstructure:"template_path"`
	OutputPath   string           `json:"output_path" mapstructure:"output_path"`
	LogLevel     string           `json:"log_level" mapstructure:"log_level"`
	HistoryDB    string           `json:"history_db" mapstructure:"history_db"`
	Context      render.Context   `json:"context" mapstructure:"context"`
	Fragments    render.Fragments `json:"fragments" mapstructure:"fragments"`
}

// DefaultConfig returns the configuration that reproduces the example page:
// template1.html is rendered to example.html with the example values.
// HistoryDB is empty, so runs are not recorded by default.
func DefaultConfig() *Config {
	return &Config{
		TemplatePath: "template1.html",
		OutputPath:   "example.html",
		LogLevel:     "info",
		HistoryDB:    "",
		Context:      render.DefaultContext(),
		Fragments:    render.DefaultFragments(),
	}
}

// LoadConfig layers the defaults, the JSON file at path, MOVEGEN_* environment
// variables and any flags already bound to v, in increasing precedence.
// If the file doesn't exist, it is created with default values.
func LoadConfig(v *viper.Viper, path string) (*Config, error) {
	defaults, err := json.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal default config: %w", err)
	}
	v.SetConfigType("json")
	if err = v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("failed to load default config: %w", err)
	}

	if _, err = os.Stat(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		var data []byte
		data, err = json.MarshalIndent(DefaultConfig(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal default config: %w", err)
		}
		if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
			// Rendering can still go ahead with the defaults.
			fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
		}
	} else {
		v.SetConfigFile(path)
		if err = v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	v.SetEnvPrefix("MOVEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	config := &Config{}
	if err = v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return config, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
