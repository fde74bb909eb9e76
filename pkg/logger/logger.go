// Package logger holds the process-wide zerolog logger.
//
// Call Init once from main; packages that are not handed a logger use Get.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// Rotation configures the optional log file. An empty Path disables it.
type Rotation struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

type Options struct {
	// Level is one of trace, debug, info, warn, error. Anything else means info.
	Level string
	// Format is json or console. The file sink is always JSON.
	Format string
	Output io.Writer
	// Service and Env are stamped on every entry when set.
	Service string
	Env     string
	File    Rotation
}

var (
	mu       sync.Mutex
	instance *zerolog.Logger
)

// Init builds the process logger. Only the first call has an effect until Reset.
func Init(opts Options) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return *instance
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	lvl := parseLevel(opts.Level)
	zerolog.SetGlobalLevel(lvl)

	ctx := zerolog.New(sink(opts)).Level(lvl).With().Timestamp()
	if opts.Service != "" {
		ctx = ctx.Str("service", opts.Service)
	}
	if opts.Env != "" {
		ctx = ctx.Str("env", opts.Env)
	}
	l := ctx.Caller().Logger()
	instance = &l
	return l
}

func sink(opts Options) io.Writer {
	var out io.Writer = os.Stdout
	if opts.Output != nil {
		out = opts.Output
	}
	if strings.EqualFold(opts.Format, FormatConsole) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	if opts.File.Path == "" {
		return out
	}
	return zerolog.MultiLevelWriter(out, &lumberjack.Logger{
		Filename:   opts.File.Path,
		MaxSize:    orDefault(opts.File.MaxSizeMB, 10),
		MaxBackups: orDefault(opts.File.MaxBackups, 5),
		MaxAge:     orDefault(opts.File.MaxAgeDays, 30),
		Compress:   true,
	})
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Get returns the logger built by Init, or a disabled logger before that.
func Get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if instance == nil {
		return zerolog.Nop()
	}
	return *instance
}

// Reset drops the current logger. Tests only.
func Reset() {
	mu.Lock()
	instance = nil
	mu.Unlock()
}

func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel || lvl > zerolog.ErrorLevel {
		return zerolog.InfoLevel
	}
	return lvl
}
