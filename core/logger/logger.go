package logger

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"sync"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *LogEntry) error

// Logger captures interaction event logs for the device.
type Logger struct {
	Record LogRecorder

	// Now is used to timestamp entries, defaults to time.Now.
	Now func() time.Time
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	var mu sync.Mutex
	return &Logger{
		Record: func(le *LogEntry) error {
			msg, err := le.toProto()
			if err != nil {
				return err
			}
			entry, err := protojson.MarshalOptions{Multiline: false}.Marshal(msg)
			if err != nil {
				return err
			}

			mu.Lock()
			defer mu.Unlock()
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops all events.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(*LogEntry) error {
			return nil
		},
	}
}

func (l *Logger) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

func (l *Logger) record(sessionID string, le *LogEntry) error {
	le.TimestampMicros = l.now().UnixNano() / int64(time.Microsecond)
	le.SessionID = sessionID
	return l.Record(le)
}

// NewSession creates a logger with an attached session ID. A random ID is
// used if id is empty.
func (l *Logger) NewSession(id string) *SessionLogger {
	if id == "" {
		id = fmt.Sprintf("%d", rand.Uint64())
	}
	return &SessionLogger{Logger: l, sessionID: id}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// Record stores the event under the session.
func (l *SessionLogger) Record(event *LogEntry) error {
	return l.record(l.sessionID, event)
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 1<<20)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var msg structpb.Struct
		if err := protojson.Unmarshal([]byte(text), &msg); err != nil {
			return fmt.Errorf("line %d: %v", line, err)
		}

		le, err := fromProto(&msg)
		if err != nil {
			return fmt.Errorf("line %d: %v", line, err)
		}
		handler(le)
	}
	return scanner.Err()
}
