package logger

import (
	"encoding/json"
	"sort"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`
	Sessions       StrCounter `json:"sessions"`

	Scripts           ScriptReport            `json:"script_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
	Panic             PanicReport             `json:"panic_report"`
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		InvalidInvocation: InvalidInvocationReport{
			Invocations: NewPathCounter("command", "error"),
		},
	}
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	if le.SessionID != "" {
		r.Sessions.Increment(le.SessionID)
	}

	switch le.Type {
	case LogTypeScript:
		r.Scripts.Count++
	case LogTypeParseError:
		r.Scripts.ParseErrors.Increment(le.Error)
	case LogTypeRunCommand:
		r.RunCommand.update(le)
	case LogTypeUnknownCommand:
		r.UnknownCommand.update(le)
	case LogTypeInvalidInvocation:
		r.InvalidInvocation.update(le)
	case LogTypePanic:
		r.Panic.update(le)
	default:
		r.InvalidEntries.Increment(string(le.Type))
	}
}

type ScriptReport struct {
	Count       int        `json:"count"`
	ParseErrors StrCounter `json:"parse_errors"`
}

type RunCommandReport struct {
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Exit statuses of failed commands, keyed by command line.
	Failures StrCounter `json:"failures"`
}

func (r *RunCommandReport) update(le *LogEntry) {
	if len(le.Command) > 0 {
		r.CommandNames.Increment(le.Command[0])
	}
	if le.ExitCode != 0 {
		r.Failures.Increment(le.CommandLine())
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *UnknownCommandReport) update(le *LogEntry) {
	if len(le.Command) > 0 {
		r.CommandNames.Increment(le.Command[0])
	}
}

type InvalidInvocationReport struct {
	Invocations *PathCounter `json:"invocations"`
}

func (r *InvalidInvocationReport) update(le *LogEntry) {
	if r.Invocations == nil {
		r.Invocations = NewPathCounter("command", "error")
	}
	name := ""
	if len(le.Command) > 0 {
		name = le.Command[0]
	}
	r.Invocations.Increment(name, le.Error)
}

type PanicReport struct {
	Contexts []string `json:"contexts"`
}

func (r *PanicReport) update(le *LogEntry) {
	r.Contexts = append(r.Contexts, le.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the given key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of distinct tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the given tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
