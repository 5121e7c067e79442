package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Quiz struct {
		ID            string `yaml:"id"`
		Seconds       int    `yaml:"seconds"`
		TickInterval  string `yaml:"tick_interval"`
		FeedbackDelay string `yaml:"feedback_delay"`
	} `yaml:"quiz"`
	UI struct {
		Title     string `yaml:"title"`
		AltScreen *bool  `yaml:"alt_screen"`
	} `yaml:"ui"`
	Log struct {
		File string `yaml:"file"`
	} `yaml:"log"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Quiz.ID = "apple"
	cfg.Quiz.Seconds = 10
	cfg.Quiz.TickInterval = "1s"
	cfg.Quiz.FeedbackDelay = "2s"
	cfg.UI.Title = "Apple Quiz"
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not
// an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// UseAltScreen reports whether the UI takes over the whole terminal.
func (c Config) UseAltScreen() bool {
	if c.UI.AltScreen == nil {
		return true
	}
	return *c.UI.AltScreen
}

// Duration parses a duration string or returns the fallback if empty,
// invalid or not positive.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	return fallback
}
