// Package obs wires the structured logger shared by cmd/server and
// cmd/cli. It exists so both entry points configure zap the same way
// instead of each hand-rolling a logger.
package obs

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap.Logger. debug selects the human-readable development
// encoder; otherwise the JSON production encoder is used.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

// Must builds a logger and panics on failure, for use at process startup
// before there is anywhere better to report the error.
func Must(debug bool) *zap.Logger {
	logger, err := New(debug)
	if err != nil {
		panic(err)
	}
	return logger
}
