/*
Package logging provides the leveled logger shared by the pipeline and the CLI.
*/
package logging

import (
	"io"
	"log"
	"os"
	"strings"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Logger struct {
	level       Level
	debugLogger *log.Logger
	infoLogger  *log.Logger
	warnLogger  *log.Logger
	errorLogger *log.Logger
}

// NewLogger writes info and debug lines to stdout, warnings and errors to stderr.
func NewLogger(level string) *Logger {
	return New(ParseLevel(level), os.Stdout, os.Stderr)
}

// New builds a logger on explicit writers.
func New(level Level, out, errOut io.Writer) *Logger {
	flags := log.Ldate | log.Ltime
	return &Logger{
		level:       level,
		debugLogger: log.New(out, "DEBUG: ", flags),
		infoLogger:  log.New(out, "INFO: ", flags),
		warnLogger:  log.New(errOut, "WARN: ", flags),
		errorLogger: log.New(errOut, "ERROR: ", flags),
	}
}

func NewDiscardLogger() *Logger {
	return New(LevelError+1, io.Discard, io.Discard)
}

func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l *Logger) Debug(format string, v ...any) {
	if l.level > LevelDebug {
		return
	}
	l.debugLogger.Printf(format, v...)
}

func (l *Logger) Info(format string, v ...any) {
	if l.level > LevelInfo {
		return
	}
	l.infoLogger.Printf(format, v...)
}

func (l *Logger) Warn(format string, v ...any) {
	if l.level > LevelWarn {
		return
	}
	l.warnLogger.Printf(format, v...)
}

func (l *Logger) Error(format string, v ...any) {
	if l.level > LevelError {
		return
	}
	l.errorLogger.Printf(format, v...)
}
