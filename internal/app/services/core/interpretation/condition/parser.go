package condition

import (
	"errors"
	"fmt"
)

// MaxLength bounds the size of a condition accepted by Parse.
const MaxLength = 1024

var (
	ErrTooLong       = errors.New("condition exceeds maximum length")
	ErrEmpty         = errors.New("condition is empty")
	ErrUnknownIdent  = errors.New("unknown variable")
	ErrUnexpectedEOF = errors.New("unexpected end of condition")
)

// Grammar, lowest precedence first:
//
//	or         -> and ("||" and)*
//	and        -> unary ("&&" unary)*
//	unary      -> "!" unary | primary
//	primary    -> "(" or ")" | "true" | "false" | comparison
//	comparison -> operand ("<" | "<=" | ">" | ">=" | "==" | "!=") operand
//	operand    -> NUMBER | "-" NUMBER | IDENT
type parser struct {
	tokens []token
	pos    int
}

// Parse compiles a warning flag condition into an expression tree.
func Parse(src string) (Expr, error) {
	if len(src) > MaxLength {
		return nil, ErrTooLong
	}
	tokens, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 1 {
		return nil, ErrEmpty
	}

	p := &parser{tokens: tokens}
	expr, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.typ != tokenEOF {
		return nil, fmt.Errorf("unexpected %q at position %d", tok.text, tok.pos)
	}
	return expr, nil
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

func (p *parser) parseOr() (Expr, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().typ == tokenOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Expr, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().typ == tokenAnd {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andExpr{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (Expr, error) {
	if p.peek().typ == tokenNot {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notExpr{child: child}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (Expr, error) {
	tok := p.peek()
	switch tok.typ {
	case tokenLParen:
		p.next()
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.typ != tokenRParen {
			return nil, fmt.Errorf("expected ')' at position %d", closing.pos)
		}
		return inner, nil
	case tokenTrue:
		p.next()
		return literalExpr(true), nil
	case tokenFalse:
		p.next()
		return literalExpr(false), nil
	case tokenEOF:
		return nil, ErrUnexpectedEOF
	}
	return p.parseComparison()
}

func (p *parser) parseComparison() (Expr, error) {
	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	op := p.next()
	switch op.typ {
	case tokenLess, tokenLessEqual, tokenGreater, tokenGreaterEqual, tokenEqual, tokenNotEqual:
	case tokenEOF:
		return nil, ErrUnexpectedEOF
	default:
		return nil, fmt.Errorf("expected comparison operator at position %d, got %q", op.pos, op.text)
	}
	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return comparisonExpr{left: left, op: op.typ, opText: op.text, right: right}, nil
}

func (p *parser) parseOperand() (operand, error) {
	tok := p.next()
	switch tok.typ {
	case tokenNumber:
		return operand{value: tok.number, literal: true}, nil
	case tokenMinus:
		number := p.next()
		if number.typ != tokenNumber {
			return operand{}, fmt.Errorf("expected number after '-' at position %d", number.pos)
		}
		return operand{value: -number.number, literal: true}, nil
	case tokenIdent:
		return operand{name: tok.text}, nil
	case tokenEOF:
		return operand{}, ErrUnexpectedEOF
	default:
		return operand{}, fmt.Errorf("expected number or variable at position %d, got %q", tok.pos, tok.text)
	}
}
