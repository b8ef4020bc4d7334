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

	"airwatch/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw config view so config can depend on logger
func FromEnv() Options {
	rc := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(rc.Get("LEVEL", "info")),
		Format:      strings.ToLower(rc.Get("FORMAT", "console")),
		Service:     rc.Get("SERVICE", "airwatch"),
		Component:   rc.Get("COMPONENT", ""),
		WithCaller:  rc.GetBool("CALLER", false),
		SampleEvery: rc.GetInt("SAMPLE_EVERY", 0),
	}
}

// Logger is the project-wide logging type
type Logger = zerolog.Logger

var (
	once sync.Once
	root atomic.Pointer[zerolog.Logger]
)

// Get returns the process-wide root logger, initializing from env on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

// Init builds the root logger; only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		var w io.Writer = os.Stdout
		if opt.Writer != nil {
			w = opt.Writer
		}
		if opt.Format == "console" {
			w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
		}

		zc := zerolog.New(w).Level(parseLevel(opt.Level)).With().Timestamp()
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			zc = zc.Str("go_version", bi.GoVersion)
		}
		if opt.Service != "" {
			zc = zc.Str("service", opt.Service)
		}
		if opt.Component != "" {
			zc = zc.Str("component", opt.Component)
		}
		for k, v := range opt.StaticFields {
			zc = zc.Str(k, v)
		}
		if opt.WithCaller {
			zc = zc.Caller()
		}

		log := zc.Logger()
		if opt.SampleEvery > 1 {
			log = log.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&log)
	})
}

// parseLevel maps level names to zerolog; unknown names fall back to info
func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
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

type fieldsKey struct{}

// field is one string pair carried on the context for C
type field struct{ k, v string }

// With returns ctx carrying an extra field that C adds to every line
// blank values are ignored
func With(ctx context.Context, key, value string) context.Context {
	if value == "" {
		return ctx
	}
	prev, _ := ctx.Value(fieldsKey{}).([]field)
	next := make([]field, 0, len(prev)+1)
	next = append(next, prev...)
	next = append(next, field{k: key, v: value})
	return context.WithValue(ctx, fieldsKey{}, next)
}

// C returns a child logger enriched with the fields on ctx (request_id, user_id, role)
func C(ctx context.Context) *Logger {
	l := Get()
	fs, _ := ctx.Value(fieldsKey{}).([]field)
	if len(fs) == 0 {
		return l
	}
	b := l.With()
	for _, f := range fs {
		b = b.Str(f.k, f.v)
	}
	ll := b.Logger()
	return &ll
}

// Named returns a child logger with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	ll := Get().With().Str("component", component).Logger()
	return &ll
}
