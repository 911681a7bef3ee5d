package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// Err folds the errors into a single error, or nil when OK.
func (v Validation) Err() error {
	if v.OK() {
		return nil
	}
	return errors.New("config validation failed:\n- " + strings.Join(v.Errors, "\n- "))
}

// NormalizeAndValidate returns a normalized copy of cfg and the validation result.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.App.Host = strings.TrimSpace(out.App.Host)
	out.Database.Path = strings.TrimSpace(out.Database.Path)
	out.Log.Level = strings.ToLower(strings.TrimSpace(out.Log.Level))

	// app
	if out.App.Host == "" {
		res.addErr("app.host is required")
	}
	// port 0 asks the OS for an ephemeral port
	if out.App.Port < 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 0..65535")
	}
	if out.App.Host != "127.0.0.1" && out.App.Host != "localhost" && out.App.Host != "::1" {
		res.addWarn("app.host is %q; the dashboard has no authentication.", out.App.Host)
	}

	// database
	if out.Database.Path == "" {
		res.addErr("database.path is required")
	}
	if out.Database.BusyTimeoutMS < 0 {
		res.addErr("database.busy_timeout_ms must be >= 0")
	}

	// charts
	if out.Charts.Width < 200 || out.Charts.Height < 150 {
		res.addErr("charts.width must be >= 200 and charts.height >= 150")
	}
	if out.Charts.BarWidth <= 0 {
		res.addErr("charts.bar_width must be > 0")
	} else if out.Charts.BarWidth > out.Charts.Width/2 {
		res.addWarn("charts.bar_width (%d) is more than half the chart width.", out.Charts.BarWidth)
	}

	// http
	if out.HTTP.RatePerSec <= 0 {
		res.addErr("http.rate_per_sec must be > 0")
	}
	if out.HTTP.Burst <= 0 {
		res.addErr("http.burst must be > 0")
	}
	if out.HTTP.ReadHeaderTimeoutSec <= 0 {
		res.addErr("http.read_header_timeout_sec must be > 0")
	}

	// log
	if out.Log.Level == "" {
		out.Log.Level = "info"
	}
	if _, err := zapcore.ParseLevel(out.Log.Level); err != nil {
		res.addErr("log.level %q is not a valid level", out.Log.Level)
	}

	return out, res
}
