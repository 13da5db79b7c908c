package models

// ScanRequest is a configuration snapshot for one scan invocation.
// Roots and Extensions are expected to be normalized already (absolute
// existing directories, lowercase dot-prefixed extensions); the request is
// never mutated after creation.
type ScanRequest struct {
	Roots          []string
	Extensions     []string
	FollowSymlinks bool
	MaxFileSize    int64 // skip files larger than this; 0 means unlimited
}

// CopyRequest describes one copy invocation
type CopyRequest struct {
	Records   []*ResultRecord
	DestRoot  string
	Overwrite bool
	DryRun    bool
}

// Event is one element of the ordered stream a scan or copy produces.
// Exactly one of Record and Entry is set. Delivery order matches emission
// order; termination is signalled by the operation's error return.
type Event struct {
	Record *ResultRecord
	Entry  *LogEntry
}

// RecordEvent wraps a record into a stream event
func RecordEvent(r *ResultRecord) Event {
	return Event{Record: r}
}

// LogEvent wraps a log entry into a stream event
func LogEvent(e LogEntry) Event {
	return Event{Entry: &e}
}
