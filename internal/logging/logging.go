// Package logging builds the application logger. The viewer owns the
// terminal, so logs only ever go to a rotated file.
package logging

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New returns a JSON logger writing to path, rotated at 100 MB and kept for
// 30 days. An empty path yields a no-op logger.
func New(path string, level zapcore.Level) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	w := zapcore.AddSync(&lumberjack.Logger{
		Filename: path,
		MaxSize:  100,
		MaxAge:   30,
	})
	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), w, level)
	return zap.New(core)
}

// ParseLevel maps a level name such as "debug" or "warn" to a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	var l zapcore.Level
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, errors.Wrapf(err, "log level %q", s)
	}
	return l, nil
}
