package pluralforms

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformed is returned, wrapped, for Plural-Forms header values that do
// not match the restricted nplurals/plural grammar.
var ErrMalformed = errors.New("malformed Plural-Forms header")

// Only digits, n, C operators, parentheses and whitespace may appear in the
// plural expression. A ';' may only terminate it.
var headerPattern = regexp.MustCompile(
	`^\s*nplurals\s*=\s*([0-9]+)\s*;\s*plural\s*=\s*([n0-9\s()?:|&=!<>+*/%-]+?)\s*(?:;\s*)?$`)

// Rule selects a plural form for a count. The zero Rule behaves like
// DefaultRule.
type Rule struct {
	NPlurals int
	Expr     Expression
}

// DefaultRule is the Germanic rule used when a catalog has no Plural-Forms
// header: two forms, the first one for n == 1 only.
var DefaultRule = Rule{
	NPlurals: 2,
	Expr:     binaryExpr{op: opNe, left: varExpr{}, right: numberExpr{1}},
}

// ParseRule parses the value of a Plural-Forms header, for example
// "nplurals=2; plural=(n != 1);". The trailing semicolon is optional.
func ParseRule(header string) (Rule, error) {
	m := headerPattern.FindStringSubmatch(header)
	if m == nil {
		return Rule{}, fmt.Errorf("%w: %q", ErrMalformed, header)
	}
	nplurals, err := strconv.Atoi(m[1])
	if err != nil {
		return Rule{}, fmt.Errorf("%w: nplurals %q: %v", ErrMalformed, m[1], err)
	}
	expr, err := Compile(strings.TrimSpace(m[2]))
	if err != nil {
		return Rule{}, fmt.Errorf("%w: %q: %v", ErrMalformed, header, err)
	}
	return Rule{NPlurals: nplurals, Expr: expr}, nil
}

// Eval returns the number of plural forms and the raw form index computed
// for n. The index is not checked against the number of forms.
func (r Rule) Eval(n int) (nplurals, index int) {
	if r.Expr == nil {
		return DefaultRule.Eval(n)
	}
	return r.NPlurals, r.Expr.Eval(n)
}

// Index returns the plural form to use for n. Indexes outside
// [0, nplurals) select form 0.
func (r Rule) Index(n int) int {
	nplurals, index := r.Eval(n)
	if index < 0 || index >= nplurals {
		return 0
	}
	return index
}

func (r Rule) String() string {
	if r.Expr == nil {
		return DefaultRule.String()
	}
	return fmt.Sprintf("nplurals=%d; plural=%s;", r.NPlurals, r.Expr)
}
