// Package logger provides a zerolog wrapper with opinionated defaults and
// request-scoped logging support
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"shopsense/internal/platform/config/raw"
	pnet "shopsense/internal/platform/net"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the logger
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	StaticFields map[string]string
}

// FromEnv builds Options using the logging-free raw config view (no cycles)
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:      strings.ToLower(rc.Get("LEVEL", "info")),
		Format:     strings.ToLower(rc.Get("FORMAT", "console")),
		Service:    rc.Get("SERVICE", "shopsense"),
		Component:  rc.Get("COMPONENT", ""),
		WithCaller: rc.GetBool("CALLER", false),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[zerolog.Logger] // internal storage of the root logger
	inited atomic.Bool
)

// Logger is the project-wide logging type - today it's just a zerolog.Logger, but it can be swapped later
type Logger = zerolog.Logger

// Get returns the process-wide root logger as a pointer
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// Init configures zerolog and builds the root logger, safe to call once
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		lvl := parseLevel(opt.Level)

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		ctx := zerolog.New(w).Level(lvl).With().Timestamp()

		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			ctx = ctx.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			ctx = ctx.Str("service", opt.Service)
		}
		if opt.Component != "" {
			ctx = ctx.Str("component", opt.Component)
		}
		for k, v := range opt.StaticFields {
			ctx = ctx.Str(k, v)
		}

		log := ctx.Logger()
		if opt.WithCaller {
			log = log.With().Caller().Logger()
		}

		root.Store(&log)
		inited.Store(true)
	})
}

// parseLevel supports string-only levels
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	case "panic":
		return zerolog.PanicLevel
	default:
		return zerolog.InfoLevel
	}
}

// C returns a child logger enriched from ctx (request_id)
func C(ctx context.Context) *Logger {
	l := Get()
	if id := pnet.RequestID(ctx); id != "" {
		ll := l.With().Str("request_id", id).Logger()
		return &ll
	}
	return l
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
