// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the dashboard looks for its optional config file.
const DefaultPath = "config.yml"

type Config struct {
	App struct {
		Host string `yaml:"host" json:"host"`
		Port int    `yaml:"port" json:"port"`
		// ShutdownToken guards POST /shutdown. Generated at startup when empty.
		ShutdownToken string `yaml:"shutdown_token" json:"-"`
	} `yaml:"app" json:"app"`

	Database struct {
		Path          string `yaml:"path" json:"path"`
		BusyTimeoutMS int    `yaml:"busy_timeout_ms" json:"busyTimeoutMs"`
	} `yaml:"database" json:"database"`

	Charts struct {
		Width    int `yaml:"width" json:"width"`
		Height   int `yaml:"height" json:"height"`
		BarWidth int `yaml:"bar_width" json:"barWidth"`
	} `yaml:"charts" json:"charts"`

	HTTP struct {
		RatePerSec           float64 `yaml:"rate_per_sec" json:"ratePerSec"`
		Burst                int     `yaml:"burst" json:"burst"`
		ReadHeaderTimeoutSec int     `yaml:"read_header_timeout_sec" json:"readHeaderTimeoutSec"`
	} `yaml:"http" json:"http"`

	Log struct {
		Level       string `yaml:"level" json:"level"`
		Development bool   `yaml:"development" json:"development"`
	} `yaml:"log" json:"log"`
}

func Defaults() Config {
	var cfg Config
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = 38472
	cfg.Database.Path = "./db/utsc-exercise.db"
	cfg.Database.BusyTimeoutMS = 5000
	cfg.Charts.Width = 720
	cfg.Charts.Height = 420
	cfg.Charts.BarWidth = 48
	cfg.HTTP.RatePerSec = 20
	cfg.HTTP.Burst = 40
	cfg.HTTP.ReadHeaderTimeoutSec = 5
	cfg.Log.Level = "info"
	return cfg
}

// Load overlays the file at path onto Defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}
