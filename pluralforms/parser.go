package pluralforms

import (
	"fmt"
)

// Binding strength of the binary operators, loosest first. The ternary
// operator binds looser than all of them and unary ! tighter.
var precedence = map[operator]int{
	opOr:  1,
	opAnd: 2,
	opEq:  3,
	opNe:  3,
	opLt:  4,
	opLte: 4,
	opGt:  4,
	opGte: 4,
	opAdd: 5,
	opSub: 5,
	opMul: 6,
	opDiv: 6,
	opMod: 6,
}

// parser is a recursive descent parser over the C subset used by
// Plural-Forms headers.
type parser struct {
	lex lexer
	tok token
}

func (p *parser) advance() {
	p.tok = p.lex.next()
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("at offset %d: %s", p.tok.pos, fmt.Sprintf(format, args...))
}

func (p *parser) parse() (Expression, error) {
	p.advance()
	expr, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != eofTok {
		return nil, p.errorf("unexpected %s", p.tok)
	}
	return expr, nil
}

// ternary: binary [ "?" ternary ":" ternary ]
func (p *parser) parseTernary() (Expression, error) {
	test, err := p.parseBinary(1)
	if err != nil {
		return nil, err
	}
	if p.tok.kind != questionTok {
		return test, nil
	}
	p.advance()
	ifTrue, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != colonTok {
		return nil, p.errorf("expected ':', got %s", p.tok)
	}
	p.advance()
	ifFalse, err := p.parseTernary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{test: test, ifTrue: ifTrue, ifFalse: ifFalse}, nil
}

// parseBinary uses precedence climbing; all binary operators are left
// associative.
func (p *parser) parseBinary(minPrec int) (Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.tok.kind == opTok && precedence[p.tok.op] >= minPrec {
		op := p.tok.op
		p.advance()
		right, err := p.parseBinary(precedence[op] + 1)
		if err != nil {
			return nil, err
		}
		left = binaryExpr{op: op, left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expression, error) {
	if p.tok.kind == notTok {
		p.advance()
		sub, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{sub: sub}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expression, error) {
	switch p.tok.kind {
	case numTok:
		expr := numberExpr{value: p.tok.num}
		p.advance()
		return expr, nil
	case varTok:
		p.advance()
		return varExpr{}, nil
	case lparenTok:
		p.advance()
		expr, err := p.parseTernary()
		if err != nil {
			return nil, err
		}
		if p.tok.kind != rparenTok {
			return nil, p.errorf("expected ')', got %s", p.tok)
		}
		p.advance()
		return expr, nil
	case invalidTok:
		return nil, p.errorf("invalid token %s", p.tok)
	}
	return nil, p.errorf("unexpected %s", p.tok)
}

// Compile a string containing a plural form expression to a Expression object.
func Compile(expr string) (Expression, error) {
	p := parser{lex: lexer{data: expr}}
	e, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("cannot parse expression: %v", err)
	}
	return e, nil
}
