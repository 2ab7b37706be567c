// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package jsonpath

import (
	"strconv"
	"strings"
)

type parser struct {
	input string
	pos   int
}

func (p *parser) parse() ([]Segment, error) {
	var segments []Segment

	if p.consume('$') {
		if p.pos < len(p.input) && p.peek() != '.' && p.peek() != '[' {
			return nil, p.fail("expected '.' or '[' after '$'")
		}
	} else if p.peek() != '[' {
		// Dot notation without the root marker, e.g. agents.tools.
		segment, err := p.parseDotSegment()
		if err != nil {
			return nil, err
		}
		segments = append(segments, segment)
	}

	for p.pos < len(p.input) {
		switch p.peek() {
		case '.':
			p.advance()
			if p.peek() == '.' {
				return nil, p.fail("recursive descent is not supported")
			}
			segment, err := p.parseDotSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment)
		case '[':
			p.advance()
			segment, err := p.parseBracketSegment()
			if err != nil {
				return nil, err
			}
			segments = append(segments, segment)
		default:
			return nil, p.fail("unexpected character " + strconv.QuoteRune(rune(p.peek())))
		}
	}

	return segments, nil
}

func (p *parser) parseDotSegment() (Segment, error) {
	if p.pos >= len(p.input) {
		return Segment{}, p.fail("unexpected end of expression")
	}
	if p.peek() == '*' {
		return Segment{}, p.fail("wildcards are not supported")
	}

	key := p.parseIdentifier()
	if key == "" {
		return Segment{}, p.fail("expected field name")
	}

	return Segment{Key: key}, nil
}

func (p *parser) parseBracketSegment() (Segment, error) {
	switch ch := p.peek(); {
	case ch == 0:
		return Segment{}, p.fail("unexpected end after '['")
	case ch == '?':
		return Segment{}, p.fail("filter expressions are not supported")
	case ch == '(':
		return Segment{}, p.fail("script expressions are not supported")
	case ch == '*':
		return Segment{}, p.fail("wildcards are not supported")
	case ch == '\'' || ch == '"':
		p.advance()
		key, err := p.parseQuoted(ch)
		if err != nil {
			return Segment{}, err
		}
		if err := p.closeBracket(); err != nil {
			return Segment{}, err
		}

		return Segment{Key: key}, nil
	case ch == '-':
		return Segment{}, p.fail("negative indices are not supported")
	case ch >= '0' && ch <= '9':
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
			p.pos++
		}
		index, err := strconv.Atoi(p.input[start:p.pos])
		if err != nil {
			return Segment{}, p.fail("invalid index: " + err.Error())
		}
		if err := p.closeBracket(); err != nil {
			return Segment{}, err
		}

		return Segment{Index: index, IsIndex: true}, nil
	default:
		return Segment{}, p.fail("unexpected character " + strconv.QuoteRune(rune(ch)) + " in bracket")
	}
}

func (p *parser) closeBracket() error {
	switch p.peek() {
	case ']':
		p.advance()

		return nil
	case ',':
		return p.fail("unions are not supported")
	case ':':
		return p.fail("slices are not supported")
	case 0:
		return p.fail("unclosed bracket")
	default:
		return p.fail("expected ']'")
	}
}

func (p *parser) parseIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentChar(p.input[p.pos]) {
		p.pos++
	}

	return p.input[start:p.pos]
}

func (p *parser) parseQuoted(quote byte) (string, error) {
	var builder strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == quote:
			p.pos++

			return builder.String(), nil
		case ch == '\\' && p.pos+1 < len(p.input):
			p.pos++
			builder.WriteByte(p.input[p.pos])
		default:
			builder.WriteByte(ch)
		}
		p.pos++
	}

	return "", p.fail("unterminated string")
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}

	return p.input[p.pos]
}

func (p *parser) advance() {
	if p.pos < len(p.input) {
		p.pos++
	}
}

func (p *parser) consume(ch byte) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) fail(reason string) *InvalidPathError {
	return &InvalidPathError{Expr: p.input, Pos: p.pos, Reason: reason}
}

func isIdentChar(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') ||
		(ch >= 'A' && ch <= 'Z') ||
		(ch >= '0' && ch <= '9') ||
		ch == '_' || ch == '-'
}
