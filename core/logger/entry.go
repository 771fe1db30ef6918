package logger

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
	"mvdan.cc/sh/v3/syntax"
)

// LogType identifies the kind of event in a LogEntry.
type LogType string

const (
	LogTypeScript            LogType = "script"
	LogTypeParseError        LogType = "parse_error"
	LogTypeRunCommand        LogType = "run_command"
	LogTypeUnknownCommand    LogType = "unknown_command"
	LogTypeInvalidInvocation LogType = "invalid_invocation"
	LogTypePanic             LogType = "panic"
)

// LogEntry is a single interaction event.
type LogEntry struct {
	TimestampMicros int64
	SessionID       string
	Type            LogType

	// Command holds the argv of the process the event is about.
	Command  []string
	ExitCode int
	// Script holds the script text for script and parse error events.
	Script string
	// Error holds error text, or panic context for panics.
	Error string
}

// NewScript records a script that's about to run.
func NewScript(script string) *LogEntry {
	return &LogEntry{Type: LogTypeScript, Script: script}
}

// NewParseError records a script the shell couldn't parse.
func NewParseError(script string, err error) *LogEntry {
	return &LogEntry{Type: LogTypeParseError, Script: script, Error: err.Error()}
}

// NewRunCommand records a process that exited.
func NewRunCommand(argv []string, exitCode int) *LogEntry {
	return &LogEntry{Type: LogTypeRunCommand, Command: argv, ExitCode: exitCode}
}

// NewUnknownCommand records a command the shell couldn't resolve.
func NewUnknownCommand(argv []string) *LogEntry {
	return &LogEntry{Type: LogTypeUnknownCommand, Command: argv, ExitCode: 127}
}

// NewInvalidInvocation records arguments a simulated command didn't support.
func NewInvalidInvocation(argv []string, err error) *LogEntry {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return &LogEntry{Type: LogTypeInvalidInvocation, Command: argv, Error: msg}
}

// NewPanic records a simulated command crashing.
func NewPanic(argv []string, context string) *LogEntry {
	return &LogEntry{Type: LogTypePanic, Command: argv, Error: context}
}

// CommandLine renders Command as a line that could be pasted into a shell.
func (le *LogEntry) CommandLine() string {
	var out []string
	for _, arg := range le.Command {
		quoted, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			quoted = fmt.Sprintf("%q", arg)
		}
		out = append(out, quoted)
	}
	return strings.Join(out, " ")
}

func (le *LogEntry) toProto() (*structpb.Struct, error) {
	fields := map[string]interface{}{
		"timestamp_micros": float64(le.TimestampMicros),
		"type":             string(le.Type),
	}
	if le.SessionID != "" {
		fields["session_id"] = le.SessionID
	}
	if len(le.Command) > 0 {
		var argv []interface{}
		for _, arg := range le.Command {
			argv = append(argv, arg)
		}
		fields["command"] = argv
	}
	if le.Type == LogTypeRunCommand || le.Type == LogTypeUnknownCommand {
		fields["exit_code"] = float64(le.ExitCode)
	}
	if le.Script != "" {
		fields["script"] = le.Script
	}
	if le.Error != "" {
		fields["error"] = le.Error
	}

	return structpb.NewStruct(fields)
}

func fromProto(s *structpb.Struct) (*LogEntry, error) {
	fields := s.GetFields()

	typ := LogType(fields["type"].GetStringValue())
	if typ == "" {
		return nil, fmt.Errorf("log entry missing type")
	}

	le := &LogEntry{
		TimestampMicros: int64(fields["timestamp_micros"].GetNumberValue()),
		SessionID:       fields["session_id"].GetStringValue(),
		Type:            typ,
		ExitCode:        int(fields["exit_code"].GetNumberValue()),
		Script:          fields["script"].GetStringValue(),
		Error:           fields["error"].GetStringValue(),
	}
	for _, arg := range fields["command"].GetListValue().GetValues() {
		le.Command = append(le.Command, arg.GetStringValue())
	}

	return le, nil
}
