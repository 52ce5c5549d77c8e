package httpapi

import (
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

var zlog atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).With().Timestamp().Logger()
	zlog.Store(&l)
}

// SetLogger installs the structured logger used by the HTTP layer.
func SetLogger(l zerolog.Logger) { zlog.Store(&l) }

func logger() *zerolog.Logger { return zlog.Load() }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// defaultLogLevel applies when a request carries no override.
var defaultLogLevel atomic.Int32

func init() {
	defaultLogLevel.Store(int32(parseLevel(os.Getenv("INSURECOST_LOG_LEVEL"))))
}

// SetDefaultLogLevel sets the request log level used without overrides.
func SetDefaultLogLevel(s string) { defaultLogLevel.Store(int32(parseLevel(s))) }

func requestLogLevel(r *http.Request) LogLevel {
	// Per-request overrides
	if v := r.URL.Query().Get("log"); v != "" {
		if v == "1" {
			return LevelDebug
		}
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return LogLevel(defaultLogLevel.Load())
}

// requestEvent starts a log event tagged with the request id, or returns nil
// when the request log level is below want.
func requestEvent(r *http.Request, want LogLevel) *zerolog.Event {
	if requestLogLevel(r) < want {
		return nil
	}
	var ev *zerolog.Event
	switch want {
	case LevelError:
		ev = logger().Error()
	case LevelDebug:
		ev = logger().Debug()
	default:
		ev = logger().Info()
	}
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	return ev.Str("path", r.URL.Path)
}

func logEnd(r *http.Request, want LogLevel, status int, start time.Time, err error) {
	ev := requestEvent(r, want)
	if ev == nil {
		return
	}
	ev = ev.Int("status", status).Dur("dur", time.Since(start))
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("predict end")
}

// logFailure records an internal error regardless of the request log level.
func logFailure(r *http.Request, status int, start time.Time, err error) {
	ev := logger().Error().Str("path", r.URL.Path)
	if rid := middleware.GetReqID(r.Context()); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	ev.Int("status", status).Dur("dur", time.Since(start)).Err(err).Msg("predict failed")
}
