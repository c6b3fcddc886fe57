// Package condition evaluates the boolean warning flag conditions attached to
// interpretation rules. Conditions are parsed into a small expression tree;
// nothing in them is ever executed as code.
package condition

import (
	"fmt"
	"strconv"
)

// Variables are the named numeric values a condition may reference.
type Variables map[string]float64

// Expr is a parsed condition.
type Expr interface {
	Eval(vars Variables) (bool, error)
	String() string
}

// Evaluate parses and evaluates src in one step.
func Evaluate(src string, vars Variables) (bool, error) {
	expr, err := Parse(src)
	if err != nil {
		return false, err
	}
	return expr.Eval(vars)
}

// orExpr and andExpr evaluate both sides, so an unknown variable is reported
// whatever the value of the other branch.
type orExpr struct {
	left, right Expr
}

func (e orExpr) Eval(vars Variables) (bool, error) {
	left, err := e.left.Eval(vars)
	if err != nil {
		return false, err
	}
	right, err := e.right.Eval(vars)
	if err != nil {
		return false, err
	}
	return left || right, nil
}

func (e orExpr) String() string {
	return "(" + e.left.String() + " || " + e.right.String() + ")"
}

type andExpr struct {
	left, right Expr
}

func (e andExpr) Eval(vars Variables) (bool, error) {
	left, err := e.left.Eval(vars)
	if err != nil {
		return false, err
	}
	right, err := e.right.Eval(vars)
	if err != nil {
		return false, err
	}
	return left && right, nil
}

func (e andExpr) String() string {
	return "(" + e.left.String() + " && " + e.right.String() + ")"
}

type notExpr struct {
	child Expr
}

func (e notExpr) Eval(vars Variables) (bool, error) {
	value, err := e.child.Eval(vars)
	if err != nil {
		return false, err
	}
	return !value, nil
}

func (e notExpr) String() string {
	return "!(" + e.child.String() + ")"
}

type literalExpr bool

func (e literalExpr) Eval(Variables) (bool, error) {
	return bool(e), nil
}

func (e literalExpr) String() string {
	return strconv.FormatBool(bool(e))
}

type operand struct {
	name    string
	value   float64
	literal bool
}

func (o operand) resolve(vars Variables) (float64, error) {
	if o.literal {
		return o.value, nil
	}
	value, ok := vars[o.name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrUnknownIdent, o.name)
	}
	return value, nil
}

func (o operand) String() string {
	if o.literal {
		return strconv.FormatFloat(o.value, 'g', -1, 64)
	}
	return o.name
}

type comparisonExpr struct {
	left   operand
	op     tokenType
	opText string
	right  operand
}

func (e comparisonExpr) Eval(vars Variables) (bool, error) {
	left, err := e.left.resolve(vars)
	if err != nil {
		return false, err
	}
	right, err := e.right.resolve(vars)
	if err != nil {
		return false, err
	}
	switch e.op {
	case tokenLess:
		return left < right, nil
	case tokenLessEqual:
		return left <= right, nil
	case tokenGreater:
		return left > right, nil
	case tokenGreaterEqual:
		return left >= right, nil
	case tokenEqual:
		return left == right, nil
	case tokenNotEqual:
		return left != right, nil
	}
	return false, fmt.Errorf("unsupported operator %q", e.opText)
}

func (e comparisonExpr) String() string {
	return e.left.String() + " " + e.opText + " " + e.right.String()
}
