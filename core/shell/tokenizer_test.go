package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizer_Peek(t *testing.T) {
	tok := NewTokenizer("  echo foo")

	got, err := tok.Peek(TokWord)
	assert.NoError(t, err)
	assert.Equal(t, Token{Type: TokWord, Text: "echo", Raw: "echo"}, got)
	assert.Equal(t, "echo foo", tok.Residual(), "peek must not consume")
}

func TestTokenizer_Next(t *testing.T) {
	tok := NewTokenizer("echo   foo;bar")

	for _, want := range []Token{
		{Type: TokWord, Text: "echo", Raw: "echo"},
		{Type: TokParam, Text: "foo", Raw: "foo"},
		{Type: TokSemicolon, Text: ";", Raw: ";"},
		{Type: TokWord, Text: "bar", Raw: "bar"},
		{Type: TokEOF, Text: "", Raw: ""},
	} {
		got, err := tok.Next(TokEOF, TokSemicolon, want.Type)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestTokenizer_order(t *testing.T) {
	cases := map[string]struct {
		input   string
		allowed []TokenType
		want    Token
	}{
		"keyword before word": {
			input:   "if [[",
			allowed: []TokenType{TokIf, TokWord},
			want:    Token{Type: TokIf, Text: "if", Raw: "if"},
		},
		"word before keyword": {
			input:   "if [[",
			allowed: []TokenType{TokWord, TokIf},
			want:    Token{Type: TokWord, Text: "if", Raw: "if"},
		},
		"keyword needs boundary": {
			input:   "format",
			allowed: []TokenType{TokFor, TokWord},
			want:    Token{Type: TokWord, Text: "format", Raw: "format"},
		},
		"assignment": {
			input:   "foo=bar",
			allowed: []TokenType{TokVar, TokWord},
			want:    Token{Type: TokVar, Text: "foo", Raw: "foo="},
		},
		"assignment needs adjacent equals": {
			input:   "foo =bar",
			allowed: []TokenType{TokVar, TokWord},
			want:    Token{Type: TokWord, Text: "foo", Raw: "foo"},
		},
		"single quoted": {
			input:   "'a b' c",
			allowed: []TokenType{TokQuoted, TokParam},
			want:    Token{Type: TokQuoted, Text: "a b", Raw: "'a b'"},
		},
		"double quoted": {
			input:   `"a 'b'" c`,
			allowed: []TokenType{TokQuoted, TokParam},
			want:    Token{Type: TokQuoted, Text: "a 'b'", Raw: `"a 'b'"`},
		},
		"empty quotes": {
			input:   `"" c`,
			allowed: []TokenType{TokQuoted},
			want:    Token{Type: TokQuoted, Text: "", Raw: `""`},
		},
		"and before pipe": {
			input:   "&& b",
			allowed: []TokenType{TokPipe, TokAnd},
			want:    Token{Type: TokAnd, Text: "&&", Raw: "&&"},
		},
		"or before pipe": {
			input:   "|| b",
			allowed: []TokenType{TokOr, TokPipe},
			want:    Token{Type: TokOr, Text: "||", Raw: "||"},
		},
		"param stops at pipe": {
			input:   "foo|cat",
			allowed: []TokenType{TokParam},
			want:    Token{Type: TokParam, Text: "foo", Raw: "foo"},
		},
		"path stops at backtick": {
			input:   "a*`",
			allowed: []TokenType{TokFilePath},
			want:    Token{Type: TokFilePath, Text: "a*", Raw: "a*"},
		},
		"binary operator": {
			input:   "<= b",
			allowed: []TokenType{TokBinaryCond},
			want:    Token{Type: TokBinaryCond, Text: "<=", Raw: "<= "},
		},
		"unary operator": {
			input:   "-z $a",
			allowed: []TokenType{TokUnaryCond, TokFilePath},
			want:    Token{Type: TokUnaryCond, Text: "-z", Raw: "-z "},
		},
		"unary operator needs boundary": {
			input:   "-zz",
			allowed: []TokenType{TokUnaryCond, TokFilePath},
			want:    Token{Type: TokFilePath, Text: "-zz", Raw: "-zz"},
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			got, err := NewTokenizer(tc.input).Next(tc.allowed...)
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestTokenizer_syntaxError(t *testing.T) {
	tok := NewTokenizer("echo ;")
	_, err := tok.Next(TokWord)
	assert.NoError(t, err)

	_, err = tok.Peek(TokEOF, TokParam)

	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
	assert.Equal(t, ";", syntaxErr.Residual)
	assert.Equal(t, 5, syntaxErr.Offset)
	assert.Equal(t, []TokenType{TokEOF, TokParam}, syntaxErr.Allowed)
	assert.EqualError(t, err, `syntax error near ";", expected one of: end of input, parameter`)
	assert.Equal(t, ";", tok.Residual())
}

func TestTokenizer_eofOnlyMatchesEmpty(t *testing.T) {
	_, err := NewTokenizer("x").Peek(TokEOF)
	assert.Error(t, err)

	got, err := NewTokenizer(" \n\t").Peek(TokEOF)
	assert.NoError(t, err)
	assert.Equal(t, TokEOF, got.Type)
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "&&", TokAnd.String())
	assert.Equal(t, "quoted string", TokQuoted.String())
	assert.Equal(t, "TokenType(99)", TokenType(99).String())
}
