package logger

import (
	"log/slog"
	"strings"
)

// Environment names the deployment stage a process runs in.
type Environment string

const (
	Development Environment = "development"
	Production  Environment = "production"
	Staging     Environment = "staging"
)

type preset struct {
	level  slog.Level
	format Format
}

var presets = map[Environment]preset{
	Development: {level: slog.LevelDebug, format: FormatText},
	Staging:     {level: slog.LevelInfo, format: FormatJSON},
	Production:  {level: slog.LevelInfo, format: FormatJSON},
}

// ParseEnvironment accepts the full names and the "prod" and "stage" short
// forms. Anything else is Development.
func ParseEnvironment(s string) Environment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod":
		return Production
	case "staging", "stage":
		return Staging
	default:
		return Development
	}
}

// WithEnvironment applies the level and format of env and tags every record
// with service and env.
func WithEnvironment(env Environment, service string) Option {
	return func(c *config) {
		p, ok := presets[env]
		if !ok {
			env, p = Development, presets[Development]
		}
		c.level = p.level
		c.format = p.format
		if service != "" {
			c.attrs = append(c.attrs,
				slog.String("service", service),
				slog.String("env", string(env)),
			)
		}
	}
}

// Config is the env-tagged logging configuration, loaded with config.Load.
type Config struct {
	Env     string `env:"APP_ENV" envDefault:"development"`
	Service string `env:"APP_NAME" envDefault:"formkit"`
	Level   string `env:"LOG_LEVEL" envDefault:""`
	Format  Format `env:"LOG_FORMAT" envDefault:""`
}

// Options turns Config into factory options. Explicit level and format
// override the environment defaults; an unknown level means INFO.
func (c Config) Options() []Option {
	opts := []Option{WithEnvironment(ParseEnvironment(c.Env), c.Service)}
	if c.Level != "" {
		opts = append(opts, WithLevel(parseLevel(c.Level)))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	return opts
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(s)))); err != nil {
		return slog.LevelInfo
	}
	return l
}
