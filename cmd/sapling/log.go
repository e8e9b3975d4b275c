package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger returns the logger commands log progress with. It logs to
// STDERR in verbose mode, to the log file if one was given, and discards
// everything otherwise.
func (rc *rootCmdConfig) Logger() *zap.SugaredLogger {
	if rc.logger == nil {
		rc.logger = newLogger(rc.verbose, rc.logFile).Sugar()
	}
	return rc.logger
}

func newLogger(verbose bool, logFile string) *zap.Logger {
	var cores []zapcore.Core
	if verbose {
		config := zap.NewDevelopmentEncoderConfig()
		config.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(os.Stderr), zapcore.DebugLevel))
	}
	if logFile != "" {
		config := zap.NewProductionEncoderConfig()
		config.EncodeTime = zapcore.RFC3339TimeEncoder
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
		})
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(config), w, zapcore.DebugLevel))
	}
	if len(cores) == 0 {
		return zap.NewNop()
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func (rc *rootCmdConfig) Logf(format string, a ...interface{}) {
	rc.Logger().Infof(format, a...)
}

// Sync flushes any buffered log entries.
func (rc *rootCmdConfig) Sync() {
	if rc.logger != nil {
		rc.logger.Sync()
	}
}

// fail prints err to STDERR and exits with the given code.
func (rc *rootCmdConfig) fail(code int, err error) {
	rc.Logger().Errorw("command failed", "error", err, "exitCode", code)
	fmt.Fprintln(os.Stderr, err)
	rc.exit(code)
}
