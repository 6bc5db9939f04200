package vane

import (
	"go.uber.org/zap"
)

var Log *zap.Logger = initLog()

func initLog() *zap.Logger {
	logger, _ := zap.NewDevelopment()
	return logger
}

// SetLogger replaces the package logger. Pass a zap.NewNop() logger to
// silence the framework entirely.
func SetLogger(logger *zap.Logger) {
	if logger != nil {
		Log = logger
	}
}
