package pluralforms

import (
	"fmt"
	"strconv"
)

// Expression is a plurfalforms expression. Eval evaluates the expression for
// a given n value. Use pluralforms.Compile to generate Expression instances.
type Expression interface {
	Eval(n int) int
	String() string
}

type operator int

const (
	opOr operator = iota
	opAnd
	opEq
	opNe
	opLt
	opLte
	opGt
	opGte
	opAdd
	opSub
	opMul
	opDiv
	opMod
)

var operatorNames = [...]string{
	opOr:  "||",
	opAnd: "&&",
	opEq:  "==",
	opNe:  "!=",
	opLt:  "<",
	opLte: "<=",
	opGt:  ">",
	opGte: ">=",
	opAdd: "+",
	opSub: "-",
	opMul: "*",
	opDiv: "/",
	opMod: "%",
}

func (op operator) String() string {
	return operatorNames[op]
}

func logic(b bool) int {
	if b {
		return 1
	}
	return 0
}

type notExpr struct {
	sub Expression
}

func (e notExpr) Eval(n int) int {
	return logic(e.sub.Eval(n) == 0)
}

func (e notExpr) String() string {
	return "!" + e.sub.String()
}

type binaryExpr struct {
	op    operator
	left  Expression
	right Expression
}

func (e binaryExpr) Eval(n int) int {
	// && and || short-circuit like C.
	switch e.op {
	case opOr:
		return logic(e.left.Eval(n) != 0 || e.right.Eval(n) != 0)
	case opAnd:
		return logic(e.left.Eval(n) != 0 && e.right.Eval(n) != 0)
	}

	x, y := e.left.Eval(n), e.right.Eval(n)
	switch e.op {
	case opEq:
		return logic(x == y)
	case opNe:
		return logic(x != y)
	case opLt:
		return logic(x < y)
	case opLte:
		return logic(x <= y)
	case opGt:
		return logic(x > y)
	case opGte:
		return logic(x >= y)
	case opAdd:
		return x + y
	case opSub:
		return x - y
	case opMul:
		return x * y
	case opDiv:
		if y == 0 {
			return 0
		}
		return x / y
	case opMod:
		if y == 0 {
			return 0
		}
		return x % y
	}
	panic(fmt.Sprintf("pluralforms: unknown operator %d", e.op))
}

func (e binaryExpr) String() string {
	return fmt.Sprintf("(%s%s%s)", e.left, e.op, e.right)
}

type ternaryExpr struct {
	test    Expression
	ifTrue  Expression
	ifFalse Expression
}

func (e ternaryExpr) Eval(n int) int {
	if e.test.Eval(n) != 0 {
		return e.ifTrue.Eval(n)
	}
	return e.ifFalse.Eval(n)
}

func (e ternaryExpr) String() string {
	return fmt.Sprintf("(%s?%s:%s)", e.test, e.ifTrue, e.ifFalse)
}

type numberExpr struct {
	value int
}

func (e numberExpr) Eval(n int) int {
	return e.value
}

func (e numberExpr) String() string {
	return strconv.Itoa(e.value)
}

type varExpr struct{}

func (e varExpr) Eval(n int) int {
	return n
}

func (e varExpr) String() string {
	return "n"
}
