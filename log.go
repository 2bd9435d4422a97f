package flechtwerk

import (
	"fmt"
	"time"
)

// LogEntry is one debug log record.
type LogEntry struct {
	Time    time.Time
	Level   string
	Source  string
	Message string
}

func (le *LogEntry) String() string {
	return fmt.Sprintf("[%s] %s (%s): %s", le.Time.Format(time.RFC3339), le.Level, le.Source, le.Message)
}

// Log is a fixed-size ring buffer of log entries. The framework logs
// caught callback panics, terminal retries and lifecycle events here;
// applications may add their own entries.
type Log struct {
	entries []LogEntry
	size    int
	start   int
	count   int
}

// logger is the process-wide framework log. Entries are kept in memory
// only and dumped to stderr when a panic unwinds the UI goroutine.
var logger = NewLog(200)

// Logger returns the framework log.
func Logger() *Log { return logger }

func NewLog(size int) *Log {
	return &Log{
		entries: make([]LogEntry, size),
		size:    size,
	}
}

func (l *Log) Add(source, level, message string, params ...any) {
	index := (l.start + l.count) % l.size
	l.entries[index] = LogEntry{
		Time:    time.Now(),
		Level:   level,
		Source:  source,
		Message: fmt.Sprintf(message, params...),
	}

	if l.count < l.size {
		l.count++
	} else {
		l.start = (l.start + 1) % l.size
	}
}

func (l *Log) Length() int {
	return l.count
}

// Entry returns the row-th entry counting backwards from the newest.
func (l *Log) Entry(row int) LogEntry {
	return l.entries[(l.start+l.count-row-1)%l.size]
}

func (l *Log) Iter() <-chan LogEntry {
	ch := make(chan LogEntry)

	go func() {
		defer close(ch)
		for i := 0; i < l.count; i++ {
			ch <- l.entries[(l.start+i)%l.size]
		}
	}()

	return ch
}
