package shell

import (
	"fmt"
	"strings"
)

// Expression is a node in a parsed script. The set of nodes is closed, see
// Evaluate for their semantics.
type Expression interface {
	fmt.Stringer

	expression()
}

// Empty does nothing and succeeds.
type Empty struct{}

// Chained runs Left then Right regardless of Left's result (`;`).
type Chained struct {
	Left, Right Expression
}

// ConditionalAnd runs Right only if Left succeeds (`&&`).
type ConditionalAnd struct {
	Left, Right Expression
}

// Pipe feeds the output of Left into Right (`|`).
type Pipe struct {
	Left, Right Expression
}

// ConditionalCheck is a test inside `[[ ]]`. Unary operators leave Right nil.
type ConditionalCheck struct {
	Left  Expression
	Op    string
	Right Expression
}

// Assignment binds a variable in the shell's scope.
type Assignment struct {
	Name  string
	Value Expression
}

// Command runs a simulated program.
type Command struct {
	Name   Expression
	Params []Expression
}

// VarSub is a literal with `$name` references that are substituted when it's
// evaluated. Quote is the quote character it was written with, if any.
type VarSub struct {
	Text  string
	Quote rune
}

// Subst runs a script and produces its output (backticks).
type Subst struct {
	Script Expression
}

// For runs Body once for each whitespace separated field of List.
type For struct {
	Var  string
	List Expression
	Body Expression
}

// If runs Body when Cond succeeds.
type If struct {
	Cond Expression
	Body Expression
}

// List concatenates the text of its items.
type List struct {
	Items []Expression
}

// NewChained creates a `;` node.
func NewChained(left, right Expression) *Chained {
	return &Chained{Left: left, Right: right}
}

// NewConditionalAnd creates a `&&` node.
func NewConditionalAnd(left, right Expression) *ConditionalAnd {
	return &ConditionalAnd{Left: left, Right: right}
}

// NewPipe creates a `|` node.
func NewPipe(left, right Expression) *Pipe {
	return &Pipe{Left: left, Right: right}
}

func (*Empty) expression()            {}
func (*Chained) expression()          {}
func (*ConditionalAnd) expression()   {}
func (*Pipe) expression()             {}
func (*ConditionalCheck) expression() {}
func (*Assignment) expression()       {}
func (*Command) expression()          {}
func (*VarSub) expression()           {}
func (*Subst) expression()            {}
func (*For) expression()              {}
func (*If) expression()               {}
func (*List) expression()             {}

func (*Empty) String() string {
	return ""
}

func (e *Chained) String() string {
	return fmt.Sprintf("%s; %s", e.Left, e.Right)
}

func (e *ConditionalAnd) String() string {
	return fmt.Sprintf("%s && %s", e.Left, e.Right)
}

func (e *Pipe) String() string {
	return fmt.Sprintf("%s | %s", e.Left, e.Right)
}

func (e *ConditionalCheck) String() string {
	if e.Right == nil {
		return fmt.Sprintf("%s %s", e.Op, e.Left)
	}
	return fmt.Sprintf("%s %s %s", e.Left, e.Op, e.Right)
}

func (e *Assignment) String() string {
	return fmt.Sprintf("%s=%s", e.Name, e.Value)
}

func (e *Command) String() string {
	parts := []string{e.Name.String()}
	for _, p := range e.Params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}

func (e *VarSub) String() string {
	if e.Quote == 0 {
		return e.Text
	}
	return string(e.Quote) + e.Text + string(e.Quote)
}

func (e *Subst) String() string {
	return "`" + e.Script.String() + "`"
}

func (e *For) String() string {
	return fmt.Sprintf("for %s in %s; do %sdone", e.Var, e.List, statements(e.Body))
}

func (e *If) String() string {
	return fmt.Sprintf("if [[ %s ]]; then %sfi", e.Cond, statements(e.Body))
}

func (e *List) String() string {
	var parts []string
	for _, item := range e.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, " ")
}

// statements renders a body followed by its terminating semicolon.
func statements(body Expression) string {
	if s := body.String(); s != "" {
		return s + "; "
	}
	return ""
}
