// Package predicate compiles the metadata query language into
// parameterized SQL over the items table.
//
// The language mirrors Spotlight query syntax:
//
//	kMDItemFSName == "report*"c && kMDItemFSSize > 4096
//	InRange(kMDItemContentModificationDate, "2024-01-01", "2024-06-30")
//
// Comparisons support ==, !=, <, <=, > and >=, grouping with
// parentheses, negation with ! and the && / || connectives. A '*'
// inside a string literal is a wildcard; a trailing 'c' modifier makes
// the match case-insensitive.
package predicate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kopischke/mdsearch/internal/attr"
)

// Compile translates input into a SQL condition fragment with
// positional arguments numbered from $1. Unknown attribute keys and
// malformed syntax are reported with their byte offset.
func Compile(input string) (string, []any, error) {
	toks, err := lex(input)
	if err != nil {
		return "", nil, err
	}

	c := &compiler{toks: toks}
	sql, err := c.parseOr()
	if err != nil {
		return "", nil, err
	}
	if tok := c.peek(); tok.kind != tokEOF {
		return "", nil, fmt.Errorf("predicate: unexpected %q at offset %d", tok.text, tok.pos)
	}

	return sql, c.args, nil
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokString
	tokNumber
	tokBool
	tokOp     // == != < <= > >=
	tokAnd    // &&
	tokOr     // ||
	tokNot    // !
	tokLParen // (
	tokRParen // )
	tokComma  // ,
)

type token struct {
	kind tokenKind
	text string
	pos  int
	num  float64
	fold bool // string literal carried a trailing 'c' modifier
}

func lex(input string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(input) {
		ch := input[i]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			i++
		case ch == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case ch == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		case ch == ',':
			toks = append(toks, token{kind: tokComma, text: ",", pos: i})
			i++
		case ch == '&':
			if i+1 >= len(input) || input[i+1] != '&' {
				return nil, fmt.Errorf("predicate: stray '&' at offset %d", i)
			}
			toks = append(toks, token{kind: tokAnd, text: "&&", pos: i})
			i += 2
		case ch == '|':
			if i+1 >= len(input) || input[i+1] != '|' {
				return nil, fmt.Errorf("predicate: stray '|' at offset %d", i)
			}
			toks = append(toks, token{kind: tokOr, text: "||", pos: i})
			i += 2
		case ch == '!':
			if i+1 < len(input) && input[i+1] == '=' {
				toks = append(toks, token{kind: tokOp, text: "!=", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokNot, text: "!", pos: i})
				i++
			}
		case ch == '=':
			if i+1 >= len(input) || input[i+1] != '=' {
				return nil, fmt.Errorf("predicate: single '=' at offset %d (use '==')", i)
			}
			toks = append(toks, token{kind: tokOp, text: "==", pos: i})
			i += 2
		case ch == '<' || ch == '>':
			op := string(ch)
			j := i + 1
			if j < len(input) && input[j] == '=' {
				op += "="
				j++
			}
			toks = append(toks, token{kind: tokOp, text: op, pos: i})
			i = j
		case ch == '"' || ch == '\'':
			tok, next, err := lexString(input, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next
		case ch >= '0' && ch <= '9' || ch == '-':
			j := i + 1
			for j < len(input) && (input[j] >= '0' && input[j] <= '9' || input[j] == '.') {
				j++
			}
			n, err := strconv.ParseFloat(input[i:j], 64)
			if err != nil {
				return nil, fmt.Errorf("predicate: bad number %q at offset %d", input[i:j], i)
			}
			toks = append(toks, token{kind: tokNumber, text: input[i:j], pos: i, num: n})
			i = j
		case isIdentStart(ch):
			j := i + 1
			for j < len(input) && isIdentPart(input[j]) {
				j++
			}
			word := input[i:j]
			switch word {
			case "true", "false":
				toks = append(toks, token{kind: tokBool, text: word, pos: i})
			default:
				toks = append(toks, token{kind: tokIdent, text: word, pos: i})
			}
			i = j
		default:
			return nil, fmt.Errorf("predicate: unexpected character %q at offset %d", ch, i)
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(input)})
	return toks, nil
}

func lexString(input string, start int) (token, int, error) {
	quote := input[start]
	var sb strings.Builder
	i := start + 1
	for i < len(input) {
		ch := input[i]
		switch ch {
		case '\\':
			if i+1 >= len(input) {
				return token{}, 0, fmt.Errorf("predicate: dangling escape at offset %d", i)
			}
			sb.WriteByte(input[i+1])
			i += 2
		case quote:
			tok := token{kind: tokString, text: sb.String(), pos: start}
			i++
			if i < len(input) && input[i] == 'c' {
				tok.fold = true
				i++
			}
			return tok, i, nil
		default:
			sb.WriteByte(ch)
			i++
		}
	}
	return token{}, 0, fmt.Errorf("predicate: unterminated string at offset %d", start)
}

func isIdentStart(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch == '_'
}

func isIdentPart(ch byte) bool {
	return isIdentStart(ch) || ch >= '0' && ch <= '9'
}

type compiler struct {
	toks []token
	i    int
	args []any
}

func (c *compiler) peek() token { return c.toks[c.i] }

func (c *compiler) next() token {
	t := c.toks[c.i]
	if t.kind != tokEOF {
		c.i++
	}
	return t
}

// bind appends an argument and returns its placeholder.
func (c *compiler) bind(v any) string {
	c.args = append(c.args, v)
	return fmt.Sprintf("$%d", len(c.args))
}

func (c *compiler) parseOr() (string, error) {
	left, err := c.parseAnd()
	if err != nil {
		return "", err
	}
	for c.peek().kind == tokOr {
		c.next()
		right, err := c.parseAnd()
		if err != nil {
			return "", err
		}
		left = fmt.Sprintf("(%s OR %s)", left, right)
	}
	return left, nil
}

func (c *compiler) parseAnd() (string, error) {
	left, err := c.parseUnary()
	if err != nil {
		return "", err
	}
	for c.peek().kind == tokAnd {
		c.next()
		right, err := c.parseUnary()
		if err != nil {
			return "", err
		}
		left = fmt.Sprintf("(%s AND %s)", left, right)
	}
	return left, nil
}

func (c *compiler) parseUnary() (string, error) {
	if c.peek().kind == tokNot {
		c.next()
		inner, err := c.parseUnary()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("NOT %s", inner), nil
	}
	return c.parsePrimary()
}

func (c *compiler) parsePrimary() (string, error) {
	tok := c.peek()
	switch tok.kind {
	case tokLParen:
		c.next()
		inner, err := c.parseOr()
		if err != nil {
			return "", err
		}
		if closing := c.next(); closing.kind != tokRParen {
			return "", fmt.Errorf("predicate: expected ')' at offset %d", closing.pos)
		}
		return fmt.Sprintf("(%s)", inner), nil
	case tokIdent:
		if tok.text == "InRange" {
			return c.parseInRange()
		}
		return c.parseComparison()
	default:
		return "", fmt.Errorf("predicate: unexpected %q at offset %d", tok.text, tok.pos)
	}
}

// InRange(key, lo, hi) is sugar for key >= lo && key <= hi.
func (c *compiler) parseInRange() (string, error) {
	c.next() // InRange
	if t := c.next(); t.kind != tokLParen {
		return "", fmt.Errorf("predicate: expected '(' after InRange at offset %d", t.pos)
	}
	key := c.next()
	if key.kind != tokIdent {
		return "", fmt.Errorf("predicate: expected attribute key at offset %d", key.pos)
	}
	if t := c.next(); t.kind != tokComma {
		return "", fmt.Errorf("predicate: expected ',' at offset %d", t.pos)
	}
	lo := c.next()
	if t := c.next(); t.kind != tokComma {
		return "", fmt.Errorf("predicate: expected ',' at offset %d", t.pos)
	}
	hi := c.next()
	if t := c.next(); t.kind != tokRParen {
		return "", fmt.Errorf("predicate: expected ')' at offset %d", t.pos)
	}

	lower, err := c.compileCompare(key, token{kind: tokOp, text: ">=", pos: lo.pos}, lo)
	if err != nil {
		return "", err
	}
	upper, err := c.compileCompare(key, token{kind: tokOp, text: "<=", pos: hi.pos}, hi)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("(%s AND %s)", lower, upper), nil
}

func (c *compiler) parseComparison() (string, error) {
	key := c.next()
	op := c.next()
	if op.kind != tokOp {
		return "", fmt.Errorf("predicate: expected comparison operator at offset %d", op.pos)
	}
	lit := c.next()
	return c.compileCompare(key, op, lit)
}

func (c *compiler) compileCompare(key, op, lit token) (string, error) {
	kind, ok := attr.KindOf(key.text)
	if !ok {
		return "", fmt.Errorf("predicate: unknown attribute %q at offset %d", key.text, key.pos)
	}
	sqlOp, ok := sqlOps[op.text]
	if !ok {
		return "", fmt.Errorf("predicate: unsupported operator %q at offset %d", op.text, op.pos)
	}

	field := fmt.Sprintf("attrs->>'%s'", key.text)

	switch kind {
	case attr.KindString:
		if lit.kind != tokString {
			return "", fmt.Errorf("predicate: %s expects a string literal at offset %d", key.text, lit.pos)
		}
		return c.compileStringCompare(field, op.text, sqlOp, lit)

	case attr.KindNumber:
		if lit.kind != tokNumber {
			return "", fmt.Errorf("predicate: %s expects a numeric literal at offset %d", key.text, lit.pos)
		}
		return fmt.Sprintf("(%s)::numeric %s %s", field, sqlOp, c.bind(lit.num)), nil

	case attr.KindDate:
		if lit.kind != tokString {
			return "", fmt.Errorf("predicate: %s expects a date string at offset %d", key.text, lit.pos)
		}
		return fmt.Sprintf("(%s)::timestamptz %s %s::timestamptz", field, sqlOp, c.bind(lit.text)), nil

	case attr.KindBool:
		if lit.kind != tokBool {
			return "", fmt.Errorf("predicate: %s expects true or false at offset %d", key.text, lit.pos)
		}
		if op.text != "==" && op.text != "!=" {
			return "", fmt.Errorf("predicate: %q not applicable to booleans at offset %d", op.text, op.pos)
		}
		return fmt.Sprintf("(%s)::boolean %s %s", field, sqlOp, c.bind(lit.text == "true")), nil

	case attr.KindList:
		if lit.kind != tokString {
			return "", fmt.Errorf("predicate: %s expects a string literal at offset %d", key.text, lit.pos)
		}
		if op.text != "==" && op.text != "!=" {
			return "", fmt.Errorf("predicate: %q not applicable to lists at offset %d", op.text, op.pos)
		}
		membership := fmt.Sprintf("attrs->'%s' ? %s", key.text, c.bind(lit.text))
		if op.text == "!=" {
			return fmt.Sprintf("NOT (%s)", membership), nil
		}
		return membership, nil
	}

	return "", fmt.Errorf("predicate: unhandled attribute kind for %q", key.text)
}

func (c *compiler) compileStringCompare(field, op, sqlOp string, lit token) (string, error) {
	wildcard := strings.Contains(lit.text, "*")

	if wildcard || lit.fold {
		if op != "==" && op != "!=" {
			return "", fmt.Errorf("predicate: pattern matching only supports == and != (offset %d)", lit.pos)
		}
		match := "LIKE"
		if lit.fold {
			match = "ILIKE"
		}
		if op == "!=" {
			match = "NOT " + match
		}
		return fmt.Sprintf("%s %s %s", field, match, c.bind(likePattern(lit.text))), nil
	}

	return fmt.Sprintf("%s %s %s", field, sqlOp, c.bind(lit.text)), nil
}

// likePattern escapes LIKE metacharacters and turns '*' into '%'.
func likePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return strings.ReplaceAll(s, "*", "%")
}

var sqlOps = map[string]string{
	"==": "=",
	"!=": "<>",
	"<":  "<",
	"<=": "<=",
	">":  ">",
	">=": ">=",
}
