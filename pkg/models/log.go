package models

import (
	"fmt"
	"time"
)

// Severity is the level of a log entry
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the display name of the severity
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LogEntry is an immutable log line produced by a scan or copy operation
type LogEntry struct {
	Time    time.Time
	Level   Severity
	Message string
}

// Infof creates an informational log entry
func Infof(format string, args ...any) LogEntry {
	return LogEntry{Time: time.Now(), Level: SeverityInfo, Message: fmt.Sprintf(format, args...)}
}

// Warnf creates a warning log entry
func Warnf(format string, args ...any) LogEntry {
	return LogEntry{Time: time.Now(), Level: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

// Errorf creates an error log entry
func Errorf(format string, args ...any) LogEntry {
	return LogEntry{Time: time.Now(), Level: SeverityError, Message: fmt.Sprintf(format, args...)}
}
