// Copyright 2025 The DBQ Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dqgcore

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports a grammar mismatch. It carries the offending token
// and the alternatives the parser would have accepted in its place.
type ParseError struct {
	Token    Token
	Expected []string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("syntax error at line %d, col %d: got %s, expected %s",
		e.Token.Line, e.Token.Col, e.Token, strings.Join(e.Expected, " or "))
}

// Parser builds a RuleDefinition from a token stream. One syntax error
// aborts the parse; no partial AST is returned.
type Parser struct {
	lexer *Lexer
	tok   Token
	err   error
}

func NewParser(lexer *Lexer) *Parser {
	return &Parser{lexer: lexer}
}

// ParseRuleDefinition parses rule text in one call. Grammar:
//
//	rule_definition := table_name column_rule+
//	column_rule     := column_name severity ["not"] check
//	severity        := "must" | "should"
func ParseRuleDefinition(text string) (*RuleDefinition, error) {
	return NewParser(NewLexer(text)).Parse()
}

func (p *Parser) Parse() (*RuleDefinition, error) {
	p.next()
	if p.err != nil {
		return nil, p.err
	}

	table, err := p.expectIdent("table name")
	if err != nil {
		return nil, err
	}
	if err := p.expectNewline(); err != nil {
		return nil, err
	}

	def := &RuleDefinition{Table: table.Text}
	for {
		rule, err := p.parseColumnRule()
		if err != nil {
			return nil, err
		}
		def.Rules = append(def.Rules, *rule)

		// a rule ends at a newline or at end of input
		switch p.tok.Kind {
		case TokenEOF:
			return def, nil
		case TokenNewline:
			p.next()
			if p.err != nil {
				return nil, p.err
			}
			if p.tok.Kind == TokenEOF {
				return def, nil
			}
		default:
			return nil, p.unexpected("newline", "end of input")
		}
	}
}

func (p *Parser) parseColumnRule() (*ColumnRule, error) {
	column, err := p.expectIdent("column name")
	if err != nil {
		return nil, err
	}

	rule := &ColumnRule{Column: column.Text, Line: column.Line}

	switch {
	case p.isKeyword("must"):
		rule.Severity = SeverityMust
	case p.isKeyword("should"):
		rule.Severity = SeverityShould
	default:
		return nil, p.unexpected(`"must"`, `"should"`)
	}
	p.next()
	if p.err != nil {
		return nil, p.err
	}

	if p.isKeyword("not") {
		rule.Negated = true
		p.next()
		if p.err != nil {
			return nil, p.err
		}
	}

	check, err := p.parseCheck()
	if err != nil {
		return nil, err
	}
	rule.Check = *check
	return rule, nil
}

func (p *Parser) parseCheck() (*Check, error) {
	switch {
	case p.isKeyword("be"):
		p.next()
		if p.err != nil {
			return nil, p.err
		}
		return p.parseBeCheck()

	case p.isKeyword("have"):
		p.next()
		if p.err != nil {
			return nil, p.err
		}
		if !p.isKeyword("whitespace") {
			return nil, p.unexpected(`"whitespace"`)
		}
		p.next()
		return &Check{Kind: CheckWhitespace}, p.err

	case p.isKeyword("match"):
		p.next()
		if p.err != nil {
			return nil, p.err
		}
		if p.tok.Kind != TokenString {
			return nil, p.unexpected("string pattern")
		}
		pattern := p.tok.Text
		p.next()
		return &Check{Kind: CheckMatch, Pattern: pattern}, p.err

	default:
		return nil, p.unexpected(`"be"`, `"have"`, `"match"`)
	}
}

func (p *Parser) parseBeCheck() (*Check, error) {
	switch {
	case p.isKeyword("null"):
		p.next()
		return &Check{Kind: CheckNull}, p.err

	case p.isKeyword("human_name"):
		p.next()
		return &Check{Kind: CheckHumanName}, p.err

	case p.isKeyword("valid_date"):
		p.next()
		return &Check{Kind: CheckValidDate}, p.err

	case p.isKeyword("in"):
		p.next()
		if p.err != nil {
			return nil, p.err
		}
		return p.parseSetCheck()

	case p.isKeyword("greater"):
		return p.parseComparison(CheckGreaterThan, "than")

	case p.isKeyword("less"):
		return p.parseComparison(CheckLessThan, "than")

	case p.isKeyword("equal"):
		return p.parseComparison(CheckEqual, "to")

	default:
		return nil, p.unexpected(`"null"`, `"human_name"`, `"valid_date"`, `"in"`,
			`"greater"`, `"less"`, `"equal"`)
	}
}

func (p *Parser) parseComparison(kind CheckKind, link string) (*Check, error) {
	p.next()
	if p.err != nil {
		return nil, p.err
	}
	if !p.isKeyword(link) {
		return nil, p.unexpected(fmt.Sprintf("%q", link))
	}
	p.next()
	if p.err != nil {
		return nil, p.err
	}

	operand, err := p.parseOperand()
	if err != nil {
		return nil, err
	}
	return &Check{Kind: kind, Operand: *operand}, nil
}

func (p *Parser) parseOperand() (*Operand, error) {
	switch {
	case p.isKeyword("now"):
		p.next()
		return &Operand{Kind: OperandNow}, p.err

	case p.tok.Kind == TokenNumber:
		value, err := parseNumberLiteral(p.tok)
		if err != nil {
			return nil, err
		}
		p.next()
		return &Operand{Kind: OperandLiteral, Literal: value}, p.err

	case p.tok.Kind == TokenString:
		value := StringValue(p.tok.Text)
		p.next()
		return &Operand{Kind: OperandLiteral, Literal: value}, p.err

	case p.tok.Kind == TokenIdent:
		column := p.tok.Text
		p.next()
		return &Operand{Kind: OperandColumn, Column: column}, p.err

	default:
		return nil, p.unexpected(`"now"`, "number", "string", "column name")
	}
}

func (p *Parser) parseSetCheck() (*Check, error) {
	if p.tok.Kind != TokenLBracket {
		return nil, p.unexpected("'['")
	}
	p.next()
	if p.err != nil {
		return nil, p.err
	}

	check := &Check{Kind: CheckInSet}
	for {
		switch p.tok.Kind {
		case TokenNumber:
			value, err := parseNumberLiteral(p.tok)
			if err != nil {
				return nil, err
			}
			check.Set = append(check.Set, value)
		case TokenString:
			check.Set = append(check.Set, StringValue(p.tok.Text))
		default:
			return nil, p.unexpected("number", "string")
		}
		p.next()
		if p.err != nil {
			return nil, p.err
		}

		if p.tok.Kind == TokenComma {
			p.next()
			if p.err != nil {
				return nil, p.err
			}
			continue
		}
		if p.tok.Kind == TokenRBracket {
			p.next()
			return check, p.err
		}
		return nil, p.unexpected("','", "']'")
	}
}

func parseNumberLiteral(tok Token) (Value, error) {
	if strings.Contains(tok.Text, ".") {
		f, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return Value{}, &ParseError{Token: tok, Expected: []string{"number"}}
		}
		return FloatValue(f), nil
	}
	i, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		return Value{}, &ParseError{Token: tok, Expected: []string{"number"}}
	}
	return IntValue(i), nil
}

func (p *Parser) next() {
	tok, err := p.lexer.Next()
	if err != nil {
		p.err = err
		return
	}
	p.tok = tok
}

func (p *Parser) isKeyword(kw string) bool {
	return p.tok.Kind == TokenKeyword && p.tok.Norm == kw
}

func (p *Parser) expectIdent(what string) (Token, error) {
	if p.tok.Kind != TokenIdent {
		return Token{}, p.unexpected(what)
	}
	tok := p.tok
	p.next()
	if p.err != nil {
		return Token{}, p.err
	}
	return tok, nil
}

func (p *Parser) expectNewline() error {
	if p.tok.Kind != TokenNewline {
		return p.unexpected("newline")
	}
	p.next()
	return p.err
}

func (p *Parser) unexpected(expected ...string) error {
	return &ParseError{Token: p.tok, Expected: expected}
}
