package pluralforms

import (
	"fmt"
	"strconv"
)

type tokenKind int

const (
	eofTok tokenKind = iota
	invalidTok
	numTok
	varTok
	opTok
	notTok
	questionTok
	colonTok
	lparenTok
	rparenTok
)

type token struct {
	kind tokenKind
	pos  int
	num  int
	op   operator
	text string
}

func (t token) String() string {
	switch t.kind {
	case eofTok:
		return "end of expression"
	case numTok:
		return strconv.Itoa(t.num)
	}
	return fmt.Sprintf("%q", t.text)
}

type lexer struct {
	data string
	pos  int
}

func (l *lexer) peekByte(c byte) bool {
	if l.pos < len(l.data) && l.data[l.pos] == c {
		l.pos += 1
		return true
	}
	return false
}

func (l *lexer) next() token {
	for l.pos < len(l.data) && isSpace(l.data[l.pos]) {
		l.pos += 1
	}
	if l.pos >= len(l.data) {
		return token{kind: eofTok, pos: l.pos}
	}

	start := l.pos
	c := l.data[l.pos]
	l.pos += 1
	tok := token{pos: start}

	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			l.pos += 1
		}
		tok.text = l.data[start:l.pos]
		num, err := strconv.ParseInt(tok.text, 10, 32)
		if err != nil {
			tok.kind = invalidTok
			return tok
		}
		tok.kind, tok.num = numTok, int(num)
	case 'n':
		tok.kind = varTok
	case '(':
		tok.kind = lparenTok
	case ')':
		tok.kind = rparenTok
	case '?':
		tok.kind = questionTok
	case ':':
		tok.kind = colonTok
	case '+':
		tok.kind, tok.op = opTok, opAdd
	case '-':
		tok.kind, tok.op = opTok, opSub
	case '*':
		tok.kind, tok.op = opTok, opMul
	case '/':
		tok.kind, tok.op = opTok, opDiv
	case '%':
		tok.kind, tok.op = opTok, opMod
	case '=':
		if !l.peekByte('=') {
			tok.kind = invalidTok
			break
		}
		tok.kind, tok.op = opTok, opEq
	case '!':
		if l.peekByte('=') {
			tok.kind, tok.op = opTok, opNe
		} else {
			tok.kind = notTok
		}
	case '&':
		if !l.peekByte('&') {
			tok.kind = invalidTok
			break
		}
		tok.kind, tok.op = opTok, opAnd
	case '|':
		if !l.peekByte('|') {
			tok.kind = invalidTok
			break
		}
		tok.kind, tok.op = opTok, opOr
	case '<':
		tok.kind, tok.op = opTok, opLt
		if l.peekByte('=') {
			tok.op = opLte
		}
	case '>':
		tok.kind, tok.op = opTok, opGt
		if l.peekByte('=') {
			tok.op = opGte
		}
	default:
		tok.kind = invalidTok
	}
	if tok.text == "" {
		tok.text = l.data[start:l.pos]
	}
	return tok
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
