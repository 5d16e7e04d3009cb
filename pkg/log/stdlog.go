package log

import (
	"context"
	stdlog "log"
	"strings"

	"github.com/rs/zerolog"
)

// stdWriter adapts zerolog to libraries that only accept a *log.Logger.
type stdWriter struct {
	logger *zerolog.Logger
	level  zerolog.Level
}

func (w *stdWriter) Write(p []byte) (int, error) {
	w.logger.WithLevel(w.level).Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

func NewStdLoggerFromCtx(ctx context.Context, level zerolog.Level) *stdlog.Logger {
	return stdlog.New(&stdWriter{logger: FromCtx(ctx), level: level}, "", 0)
}
