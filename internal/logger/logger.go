package logger

import (
	"io"
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

const (
	defaultServiceName = "vb-capital-ai"
	serviceNameEnv     = "SERVICE_NAME"
	fieldServiceName   = "service_name"
	timeLayout         = "2006-01-02T15:04:05"
)

// Logger 는 패키지 전역 로거가 만족해야 하는 최소 인터페이스.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type Fields map[string]any

// Log 는 Init 전에도 info 레벨로 쓸 수 있다.
var Log Logger = NewLogger("info")

// Init replaces Log. An empty level means info.
func Init(level string) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
}

// NewLogger writes JSON lines (datetime, level, message plus any fields) to the console.
func NewLogger(level string) Logger {
	h := handler.NewConsoleHandler(levelsUpTo(slog.LevelByName(level)))
	h.SetFormatter(jsonFormatter())
	return slog.NewWithHandlers(h)
}

// NewWriterLogger writes the same JSON lines to w.
func NewWriterLogger(w io.Writer, level string) Logger {
	h := handler.NewIOWriterHandler(w, levelsUpTo(slog.LevelByName(level)))
	h.SetFormatter(jsonFormatter())
	return slog.NewWithHandlers(h)
}

func jsonFormatter() *slog.JSONFormatter {
	return slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{slog.FieldKeyDatetime, slog.FieldKeyLevel, slog.FieldKeyMessage}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = timeLayout
	})
}

// gookit 레벨은 숫자가 작을수록 심각하다.
func levelsUpTo(limit slog.Level) slog.Levels {
	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= limit {
			levels = append(levels, lv)
		}
	}
	return levels
}

func serviceName() string {
	if sn := os.Getenv(serviceNameEnv); sn != "" {
		return sn
	}
	return defaultServiceName
}

// emit stamps service_name and writes msg at level. A Log that is not a gookit
// logger gets the bare message.
func emit(level slog.Level, msg string, fields Fields) {
	if fields == nil {
		fields = Fields{}
	}
	if _, ok := fields[fieldServiceName]; !ok {
		fields[fieldServiceName] = serviceName()
	}

	lg, ok := Log.(*slog.Logger)
	if !ok {
		switch level {
		case slog.DebugLevel:
			Log.Debug(msg)
		case slog.WarnLevel:
			Log.Warn(msg)
		case slog.ErrorLevel:
			Log.Error(msg)
		default:
			Log.Info(msg)
		}
		return
	}

	r := lg.WithFields(slog.M(fields))
	switch level {
	case slog.DebugLevel:
		r.Debug(msg)
	case slog.WarnLevel:
		r.Warn(msg)
	case slog.ErrorLevel:
		r.Error(msg)
	default:
		r.Info(msg)
	}
}

// InfoWithFields 는 request_id, session_id 같은 필드를 JSON 에 함께 남긴다.
func InfoWithFields(msg string, fields Fields)  { emit(slog.InfoLevel, msg, fields) }
func DebugWithFields(msg string, fields Fields) { emit(slog.DebugLevel, msg, fields) }
func WarnWithFields(msg string, fields Fields)  { emit(slog.WarnLevel, msg, fields) }
func ErrorWithFields(msg string, fields Fields) { emit(slog.ErrorLevel, msg, fields) }
