package shell

import "fmt"

// Parse parses a script into an expression tree. Malformed scripts produce a
// *SyntaxError before anything runs.
func Parse(script string) (Expression, error) {
	p := &parser{tok: NewTokenizer(script)}
	return p.parseScript(TokEOF)
}

// MustParse is like Parse but panics if the script can't be parsed.
func MustParse(script string) Expression {
	expr, err := Parse(script)
	if err != nil {
		panic(fmt.Sprintf("shell: Parse(%q): %v", script, err))
	}
	return expr
}

type parser struct {
	tok *Tokenizer

	// substDepth is the number of backtick substitutions being parsed, they
	// can't nest because the closing and opening ticks look the same.
	substDepth int
}

// accept consumes the next token if it's one of the given types.
func (p *parser) accept(types ...TokenType) (Token, bool) {
	if _, err := p.tok.Peek(types...); err != nil {
		return Token{}, false
	}
	tok, err := p.tok.Next(types...)
	return tok, err == nil
}

func (p *parser) expect(types ...TokenType) error {
	_, err := p.tok.Next(types...)
	return err
}

// startTypes are the tokens that can begin a statement.
func (p *parser) startTypes() []TokenType {
	if p.substDepth > 0 {
		return []TokenType{TokIf, TokFor, TokVar, TokWord}
	}
	return []TokenType{TokIf, TokFor, TokBacktick, TokVar, TokWord}
}

// valueTypes are the tokens that can begin a value.
func (p *parser) valueTypes() []TokenType {
	if p.substDepth > 0 {
		return []TokenType{TokQuoted, TokFilePath}
	}
	return []TokenType{TokBacktick, TokQuoted, TokFilePath}
}

// parseScript parses statements joined by `;`, `&&` and `|` up to and
// including the end token.
func (p *parser) parseScript(end TokenType) (Expression, error) {
	if _, ok := p.accept(end); ok {
		return &Empty{}, nil
	}

	left, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	for {
		tok, err := p.tok.Next(end, TokSemicolon, TokAnd, TokPipe)
		if err != nil {
			return nil, err
		}

		switch tok.Type {
		case end:
			return left, nil

		case TokSemicolon:
			// Trailing semicolons don't start a new statement.
			if _, ok := p.accept(end); ok {
				return left, nil
			}
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			left = NewChained(left, right)

		case TokAnd:
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			left = NewConditionalAnd(left, right)

		case TokPipe:
			right, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			left = NewPipe(left, right)
		}
	}
}

func (p *parser) parseExpression() (Expression, error) {
	tok, err := p.tok.Peek(p.startTypes()...)
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokIf:
		return p.parseIf()
	case TokFor:
		return p.parseFor()
	default:
		return p.parseCommand()
	}
}

func (p *parser) parseCommand() (Expression, error) {
	tok, err := p.tok.Next(p.startTypes()...)
	if err != nil {
		return nil, err
	}

	var name Expression
	switch tok.Type {
	case TokBacktick:
		if name, err = p.parseSubstBody(); err != nil {
			return nil, err
		}

	case TokVar:
		value, err := p.parseAssignedValue()
		if err != nil {
			return nil, err
		}
		return &Assignment{Name: tok.Text, Value: value}, nil

	default:
		name = &VarSub{Text: tok.Text}
	}

	cmd := &Command{Name: name}
	for {
		param, err := p.parseParam()
		if err != nil {
			return nil, err
		}
		if param == nil {
			return cmd, nil
		}
		cmd.Params = append(cmd.Params, param)
	}
}

// parseParam parses the next parameter of a command, or returns nil at the
// end of the command.
func (p *parser) parseParam() (Expression, error) {
	tok, err := p.tok.Peek(TokEOF, TokSemicolon, TokAnd, TokPipe, TokBacktick, TokQuoted, TokParam)
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokBacktick:
		if p.substDepth > 0 {
			return nil, nil
		}
		return p.parseSubst()
	case TokQuoted:
		return p.parseQuoted()
	case TokParam:
		if _, err := p.tok.Next(TokParam); err != nil {
			return nil, err
		}
		return &VarSub{Text: tok.Text}, nil
	default:
		return nil, nil
	}
}

// parseAssignedValue parses the right hand side of `name=`. Nothing before the
// end of the statement assigns the empty string.
func (p *parser) parseAssignedValue() (Expression, error) {
	if _, err := p.tok.Peek(TokEOF, TokSemicolon, TokAnd, TokPipe); err == nil {
		return &VarSub{}, nil
	}
	if p.substDepth > 0 {
		if _, err := p.tok.Peek(TokBacktick); err == nil {
			return &VarSub{}, nil
		}
	}
	return p.parseValue()
}

func (p *parser) parseValue() (Expression, error) {
	tok, err := p.tok.Peek(p.valueTypes()...)
	if err != nil {
		return nil, err
	}

	switch tok.Type {
	case TokBacktick:
		return p.parseSubst()
	case TokQuoted:
		return p.parseQuoted()
	default:
		if _, err := p.tok.Next(TokFilePath); err != nil {
			return nil, err
		}
		return &VarSub{Text: tok.Text}, nil
	}
}

func (p *parser) parseQuoted() (Expression, error) {
	tok, err := p.tok.Next(TokQuoted)
	if err != nil {
		return nil, err
	}
	return &VarSub{Text: tok.Text, Quote: rune(tok.Raw[0])}, nil
}

func (p *parser) parseSubst() (Expression, error) {
	if err := p.expect(TokBacktick); err != nil {
		return nil, err
	}
	return p.parseSubstBody()
}

// parseSubstBody parses a substitution after its opening backtick.
func (p *parser) parseSubstBody() (Expression, error) {
	p.substDepth++
	defer func() { p.substDepth-- }()

	script, err := p.parseScript(TokBacktick)
	if err != nil {
		return nil, err
	}
	return &Subst{Script: script}, nil
}

func (p *parser) parseIf() (Expression, error) {
	if err := p.expect(TokIf); err != nil {
		return nil, err
	}
	if err := p.expect(TokOpenCond); err != nil {
		return nil, err
	}

	cond, err := p.parseCondition()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.tok.Next(TokCloseCond, TokAnd, TokOr)
		if err != nil {
			return nil, err
		}
		if tok.Type == TokCloseCond {
			break
		}

		right, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		cond = &ConditionalCheck{Left: cond, Op: tok.Text, Right: right}
	}

	if err := p.expect(TokSemicolon); err != nil {
		return nil, err
	}
	if err := p.expect(TokThen); err != nil {
		return nil, err
	}

	body, err := p.parseScript(TokFi)
	if err != nil {
		return nil, err
	}
	return &If{Cond: cond, Body: body}, nil
}

func (p *parser) parseCondition() (Expression, error) {
	if tok, ok := p.accept(TokUnaryCond); ok {
		operand, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		return &ConditionalCheck{Left: operand, Op: tok.Text}, nil
	}

	left, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	op, err := p.tok.Next(TokBinaryCond)
	if err != nil {
		return nil, err
	}
	right, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	return &ConditionalCheck{Left: left, Op: op.Text, Right: right}, nil
}

func (p *parser) parseFor() (Expression, error) {
	if err := p.expect(TokFor); err != nil {
		return nil, err
	}
	name, err := p.tok.Next(TokWord)
	if err != nil {
		return nil, err
	}
	if err := p.expect(TokIn); err != nil {
		return nil, err
	}

	list := &List{}
	for {
		if _, ok := p.accept(TokSemicolon); ok {
			break
		}
		item, err := p.parseValue()
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}

	if err := p.expect(TokDo); err != nil {
		return nil, err
	}
	body, err := p.parseScript(TokDone)
	if err != nil {
		return nil, err
	}
	return &For{Var: name.Text, List: list, Body: body}, nil
}
