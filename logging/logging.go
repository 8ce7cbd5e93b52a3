package logging

import (
	"log"
	"sync/atomic"
)

const (
	// TraceLevel indicates a log message's level of criticality
	TraceLevel = iota
	// DebugLevel indicates a log message's level of criticality
	DebugLevel
	// InfoLevel indicates a log message's level of criticality
	InfoLevel
	// WarnLevel indicates a log message's level of criticality
	WarnLevel
	// ErrorLevel indicates a log message's level of criticality
	ErrorLevel
	// FatalLevel indicates a log message's level of criticality
	FatalLevel
)

var threshold int32 = WarnLevel

// LogLevelToString translates a log level enum to a string representation
func LogLevelToString(level int) string {
	switch level {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	case FatalLevel:
		return "FATAL"
	default:
		return "TRACE"
	}
}

// SetLevel changes the minimum level of messages which are written. Defaults to WarnLevel.
func SetLevel(level int) {
	atomic.StoreInt32(&threshold, int32(level))
}

// Level returns the minimum level of messages which are written
func Level() int {
	return int(atomic.LoadInt32(&threshold))
}

// Enabled returns true iff messages at the given level are written
func Enabled(level int) bool {
	return level >= Level()
}

// Logf writes a message at the given level via the standard logger
func Logf(level int, format string, args ...interface{}) {
	if !Enabled(level) {
		return
	}
	log.Printf(LogLevelToString(level)+": "+format, args...)
}

// Debugf writes a message at DebugLevel
func Debugf(format string, args ...interface{}) {
	Logf(DebugLevel, format, args...)
}

// Infof writes a message at InfoLevel
func Infof(format string, args ...interface{}) {
	Logf(InfoLevel, format, args...)
}

// Warnf writes a message at WarnLevel
func Warnf(format string, args ...interface{}) {
	Logf(WarnLevel, format, args...)
}
