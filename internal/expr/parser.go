package expr

import (
	"fmt"
	"strconv"
)

type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	p.skipSpaces()
	if p.pos < len(p.input) {
		return p.input[p.pos]
	}
	return 0
}

func (p *parser) unexpected() error {
	if p.pos >= len(p.input) {
		return fmt.Errorf("%w: unexpected end of expression", ErrSyntax)
	}
	return fmt.Errorf("%w: unexpected %q at position %d", ErrSyntax, p.input[p.pos], p.pos)
}

// parseSum handles + and -
func (p *parser) parseSum() (node, error) {
	left, err := p.parseProduct()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		p.pos++
		right, err := p.parseProduct()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
}

// parseProduct handles * and /
func (p *parser) parseProduct() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		p.pos++
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = binary{op: op, left: left, right: right}
	}
}

// parseUnary handles a leading + or -. It binds looser than ^, so -x^2 is
// -(x^2).
func (p *parser) parseUnary() (node, error) {
	switch p.peek() {
	case '-':
		p.pos++
		arg, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return negate{arg: arg}, nil
	case '+':
		p.pos++
		return p.parseUnary()
	}
	return p.parsePower()
}

// parsePower handles ^, right associative: 2^3^2 is 2^(3^2).
func (p *parser) parsePower() (node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if p.peek() != '^' {
		return base, nil
	}
	p.pos++
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binary{op: '^', left: base, right: exp}, nil
}

// parseAtom handles numbers, names, calls and parenthesized expressions.
func (p *parser) parseAtom() (node, error) {
	ch := p.peek()
	switch {
	case ch == 0:
		return nil, p.unexpected()
	case ch == '(':
		p.pos++
		inner, err := p.parseSum()
		if err != nil {
			return nil, err
		}
		if p.peek() != ')' {
			return nil, fmt.Errorf("%w: missing closing parenthesis at position %d", ErrSyntax, p.pos)
		}
		p.pos++
		return inner, nil
	case isDigit(ch) || ch == '.':
		return p.parseNumber()
	case isIdentStart(ch):
		return p.parseName()
	}
	return nil, p.unexpected()
}

func (p *parser) parseNumber() (node, error) {
	start := p.pos
	for p.pos < len(p.input) && (isDigit(p.input[p.pos]) || p.input[p.pos] == '.') {
		p.pos++
	}
	// Exponent only when digits follow, so "2e" stays a syntax error
	// instead of swallowing the constant e.
	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		end := p.pos + 1
		if end < len(p.input) && (p.input[end] == '+' || p.input[end] == '-') {
			end++
		}
		if end < len(p.input) && isDigit(p.input[end]) {
			for end < len(p.input) && isDigit(p.input[end]) {
				end++
			}
			p.pos = end
		}
	}

	text := p.input[start:p.pos]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid number %q at position %d", ErrSyntax, text, start)
	}
	return constant(v), nil
}

func (p *parser) parseName() (node, error) {
	start := p.pos
	for p.pos < len(p.input) && isIdentPart(p.input[p.pos]) {
		p.pos++
	}
	name := p.input[start:p.pos]

	if p.peek() == '(' {
		return p.parseCall(name, start)
	}

	if name == "x" {
		return variable{}, nil
	}
	if v, ok := constants[name]; ok {
		return constant(v), nil
	}
	if _, ok := builtins[name]; ok {
		return nil, fmt.Errorf("%w: function %q needs arguments at position %d", ErrSyntax, name, start)
	}
	return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownIdentifier, name, start)
}

func (p *parser) parseCall(name string, start int) (node, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownFunction, name, start)
	}
	p.pos++ // (

	var args []node
	if p.peek() != ')' {
		for {
			arg, err := p.parseSum()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.peek() != ',' {
				break
			}
			p.pos++
		}
	}
	if p.peek() != ')' {
		return nil, fmt.Errorf("%w: missing closing parenthesis at position %d", ErrSyntax, p.pos)
	}
	p.pos++

	if !b.arityOK(len(args)) {
		return nil, fmt.Errorf("%w: %s takes %s, got %d", ErrArity, name, b.arityText(), len(args))
	}
	return call{fn: b.fn, args: args}, nil
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
