package condition

import (
	"fmt"
	"strconv"
)

type tokenType int

const (
	tokenNumber tokenType = iota
	tokenIdent
	tokenTrue
	tokenFalse
	tokenLParen
	tokenRParen
	tokenAnd
	tokenOr
	tokenNot
	tokenMinus
	tokenLess
	tokenLessEqual
	tokenGreater
	tokenGreaterEqual
	tokenEqual
	tokenNotEqual
	tokenEOF
)

type token struct {
	typ    tokenType
	text   string
	number float64
	pos    int
}

// tokenize splits a condition into tokens. Any character outside the small
// comparison language is rejected here.
func tokenize(src string) ([]token, error) {
	var tokens []token
	i, n := 0, len(src)

	for i < n {
		ch := src[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			tokens = append(tokens, token{typ: tokenLParen, text: "(", pos: i})
			i++
		case ch == ')':
			tokens = append(tokens, token{typ: tokenRParen, text: ")", pos: i})
			i++
		case ch == '-':
			tokens = append(tokens, token{typ: tokenMinus, text: "-", pos: i})
			i++
		case ch == '&' || ch == '|':
			if i+1 >= n || src[i+1] != ch {
				return nil, fmt.Errorf("unexpected %q at position %d", ch, i)
			}
			typ := tokenAnd
			if ch == '|' {
				typ = tokenOr
			}
			tokens = append(tokens, token{typ: typ, text: src[i : i+2], pos: i})
			i += 2
		case ch == '<' || ch == '>' || ch == '=' || ch == '!':
			tok, width, err := operatorAt(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i += width
		case isDigit(ch) || ch == '.':
			j := i
			for j < n && (isDigit(src[j]) || src[j] == '.') {
				j++
			}
			value, err := strconv.ParseFloat(src[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid number %q at position %d", src[i:j], i)
			}
			tokens = append(tokens, token{typ: tokenNumber, text: src[i:j], number: value, pos: i})
			i = j
		case isIdentStart(ch):
			j := i
			for j < n && isIdentPart(src[j]) {
				j++
			}
			word := src[i:j]
			typ := tokenIdent
			switch word {
			case "true":
				typ = tokenTrue
			case "false":
				typ = tokenFalse
			}
			tokens = append(tokens, token{typ: typ, text: word, pos: i})
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at position %d", ch, i)
		}
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: n})
	return tokens, nil
}

func operatorAt(src string, i int) (token, int, error) {
	next := byte(0)
	if i+1 < len(src) {
		next = src[i+1]
	}
	switch src[i] {
	case '<':
		if next == '=' {
			return token{typ: tokenLessEqual, text: "<=", pos: i}, 2, nil
		}
		return token{typ: tokenLess, text: "<", pos: i}, 1, nil
	case '>':
		if next == '=' {
			return token{typ: tokenGreaterEqual, text: ">=", pos: i}, 2, nil
		}
		return token{typ: tokenGreater, text: ">", pos: i}, 1, nil
	case '=':
		if next == '=' {
			return token{typ: tokenEqual, text: "==", pos: i}, 2, nil
		}
		return token{}, 0, fmt.Errorf("assignment is not allowed at position %d", i)
	default:
		if next == '=' {
			return token{typ: tokenNotEqual, text: "!=", pos: i}, 2, nil
		}
		return token{typ: tokenNot, text: "!", pos: i}, 1, nil
	}
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
