package shell

import (
	"fmt"
	"regexp"
)

// TokenType is a lexical category of the shell dialect. The grammar is
// ambiguous without context so the parser always says which types are legal
// next, in priority order.
type TokenType int

const (
	TokEOF TokenType = iota
	TokBacktick
	TokSemicolon
	TokAnd
	TokOr
	TokPipe
	TokOpenCond
	TokCloseCond
	TokIf
	TokThen
	TokFi
	TokFor
	TokIn
	TokDo
	TokDone
	TokWord
	TokVar
	TokFilePath
	TokQuoted
	TokParam
	TokUnaryCond
	TokBinaryCond
)

type tokenRule struct {
	name    string
	pattern *regexp.Regexp
	// captures is set if the token's text is the first capture group that
	// took part in the match rather than the whole match.
	captures bool
}

var tokenRules = map[TokenType]tokenRule{
	TokEOF:       {name: "end of input", pattern: regexp.MustCompile(`^$`)},
	TokBacktick:  {name: "`", pattern: regexp.MustCompile("^`")},
	TokSemicolon: {name: ";", pattern: regexp.MustCompile(`^;`)},
	TokAnd:       {name: "&&", pattern: regexp.MustCompile(`^&&`)},
	TokOr:        {name: "||", pattern: regexp.MustCompile(`^\|\|`)},
	TokPipe:      {name: "|", pattern: regexp.MustCompile(`^\|`)},
	TokOpenCond:  {name: "[[", pattern: regexp.MustCompile(`^\[\[`)},
	TokCloseCond: {name: "]]", pattern: regexp.MustCompile(`^\]\]`)},
	TokIf:        {name: "if", pattern: regexp.MustCompile(`^if\b`)},
	TokThen:      {name: "then", pattern: regexp.MustCompile(`^then\b`)},
	TokFi:        {name: "fi", pattern: regexp.MustCompile(`^fi\b`)},
	TokFor:       {name: "for", pattern: regexp.MustCompile(`^for\b`)},
	TokIn:        {name: "in", pattern: regexp.MustCompile(`^in\b`)},
	TokDo:        {name: "do", pattern: regexp.MustCompile(`^do\b`)},
	TokDone:      {name: "done", pattern: regexp.MustCompile(`^done\b`)},
	TokWord: {
		name:     "word",
		pattern:  regexp.MustCompile("^([^\\s;|&=`'\"]+)"),
		captures: true,
	},
	TokVar: {
		name:     "assignment",
		pattern:  regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)=`),
		captures: true,
	},
	TokFilePath: {
		name:     "path",
		pattern:  regexp.MustCompile("^([^\\s;=`]+)"),
		captures: true,
	},
	TokQuoted: {
		name:     "quoted string",
		pattern:  regexp.MustCompile(`^(?:'([^']*)'|"([^"]*)")`),
		captures: true,
	},
	TokParam: {
		name:     "parameter",
		pattern:  regexp.MustCompile("^([^\\s;|&`'\"][^\\s;|&`]*)"),
		captures: true,
	},
	TokUnaryCond: {
		name:     "unary operator",
		pattern:  regexp.MustCompile(`^(-z|-n)(?:\s|$)`),
		captures: true,
	},
	TokBinaryCond: {
		name:     "binary operator",
		pattern:  regexp.MustCompile(`^(==|!=|<=|>=|<|>|-eq|-ne|-gt|-ge|-lt|-le)(?:\s|$)`),
		captures: true,
	},
}

func (t TokenType) String() string {
	if rule, ok := tokenRules[t]; ok {
		return rule.name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is a single lexical unit.
type Token struct {
	Type TokenType
	// Text is the token's value, for quoted strings the quotes are stripped.
	Text string
	// Raw is the source text the token was matched from.
	Raw string
}

// match tries to match the rule at the start of s. It returns the token and
// the length of the matched prefix.
func (t TokenType) match(s string) (Token, int, bool) {
	rule := tokenRules[t]
	loc := rule.pattern.FindStringSubmatchIndex(s)
	if loc == nil {
		return Token{}, 0, false
	}

	tok := Token{Type: t, Raw: s[loc[0]:loc[1]]}
	tok.Text = tok.Raw
	if rule.captures {
		for i := 2; i < len(loc); i += 2 {
			if loc[i] >= 0 {
				tok.Text = s[loc[i]:loc[i+1]]
				break
			}
		}
	}
	return tok, loc[1], true
}
