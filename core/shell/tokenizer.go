package shell

import (
	"fmt"
	"strings"
)

// SyntaxError is returned when none of the token types legal at a point in
// the grammar match the remaining input.
type SyntaxError struct {
	// Residual is the input that hadn't been consumed.
	Residual string
	// Offset is the byte offset of Residual in the script.
	Offset int
	// Allowed holds the token types that were legal.
	Allowed []TokenType
}

func (e *SyntaxError) Error() string {
	var allowed []string
	for _, t := range e.Allowed {
		allowed = append(allowed, t.String())
	}

	near := "end of input"
	if e.Residual != "" {
		near = fmt.Sprintf("%q", e.Residual)
	}
	return fmt.Sprintf("syntax error near %s, expected one of: %s", near, strings.Join(allowed, ", "))
}

// Tokenizer produces tokens on demand from a script.
type Tokenizer struct {
	command  string
	residual string
}

// NewTokenizer creates a tokenizer over the whole command.
func NewTokenizer(command string) *Tokenizer {
	return &Tokenizer{
		command:  command,
		residual: strings.TrimLeft(command, whitespace),
	}
}

const whitespace = " \t\r\n"

// Residual returns the input that hasn't been consumed yet.
func (t *Tokenizer) Residual() string {
	return t.residual
}

// Peek returns the first of the allowed token types that matches the start
// of the residual without consuming it.
func (t *Tokenizer) Peek(allowed ...TokenType) (Token, error) {
	tok, _, err := t.find(allowed)
	return tok, err
}

// Next is like Peek but consumes the token.
func (t *Tokenizer) Next(allowed ...TokenType) (Token, error) {
	tok, n, err := t.find(allowed)
	if err != nil {
		return Token{}, err
	}
	t.residual = strings.TrimLeft(t.residual[n:], whitespace)
	return tok, nil
}

func (t *Tokenizer) find(allowed []TokenType) (Token, int, error) {
	for _, typ := range allowed {
		if tok, n, ok := typ.match(t.residual); ok {
			return tok, n, nil
		}
	}

	return Token{}, 0, &SyntaxError{
		Residual: t.residual,
		Offset:   len(t.command) - len(t.residual),
		Allowed:  append([]TokenType(nil), allowed...),
	}
}
