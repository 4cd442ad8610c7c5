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
	"strings"
	"unicode"
)

// LexError reports an unrecognized character sequence in rule text.
type LexError struct {
	Line int
	Col  int
	Char rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("lex error at line %d, col %d: unexpected character %q", e.Line, e.Col, e.Char)
}

// Lexer turns rule text into a stream of tokens. Consecutive line
// breaks collapse into a single newline token, and leading/trailing
// blank lines produce none. A lexer is single-use; call NewLexer again
// to restart on the same input.
type Lexer struct {
	input   []rune
	pos     int
	line    int
	col     int
	started bool
	done    bool
}

func NewLexer(input string) *Lexer {
	return &Lexer{
		input: []rune(input),
		line:  1,
		col:   1,
	}
}

// Next returns the next token, ending with a TokenEOF token that is
// returned on every subsequent call.
func (l *Lexer) Next() (Token, error) {
	sawNewline := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\n' {
			sawNewline = true
			l.advance()
			continue
		}
		if unicode.IsSpace(c) {
			l.advance()
			continue
		}
		break
	}

	if l.pos >= len(l.input) {
		l.done = true
		return Token{Kind: TokenEOF, Line: l.line, Col: l.col}, nil
	}

	// suppress the newline token before the first real token
	if sawNewline && l.started {
		return Token{Kind: TokenNewline, Line: l.line, Col: l.col}, nil
	}
	l.started = true

	c := l.input[l.pos]
	startLine, startCol := l.line, l.col

	switch {
	case c == '[':
		l.advance()
		return Token{Kind: TokenLBracket, Text: "[", Line: startLine, Col: startCol}, nil
	case c == ']':
		l.advance()
		return Token{Kind: TokenRBracket, Text: "]", Line: startLine, Col: startCol}, nil
	case c == ',':
		l.advance()
		return Token{Kind: TokenComma, Text: ",", Line: startLine, Col: startCol}, nil
	case c == '"' || c == '\'':
		return l.lexString(c, startLine, startCol)
	case unicode.IsDigit(c) || (c == '-' && l.pos+1 < len(l.input) && unicode.IsDigit(l.input[l.pos+1])):
		return l.lexNumber(startLine, startCol)
	case isIdentStart(c):
		return l.lexWord(startLine, startCol)
	default:
		return Token{}, &LexError{Line: startLine, Col: startCol, Char: c}
	}
}

// Tokens drains the lexer, returning all tokens up to and including EOF.
func (l *Lexer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.pos++
}

func (l *Lexer) lexString(quote rune, line, col int) (Token, error) {
	l.advance() // opening quote
	var sb strings.Builder
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '\\' && l.pos+1 < len(l.input) {
			next := l.input[l.pos+1]
			if next == quote || next == '\\' {
				sb.WriteRune(next)
				l.advance()
				l.advance()
				continue
			}
		}
		if c == quote {
			l.advance()
			return Token{Kind: TokenString, Text: sb.String(), Line: line, Col: col}, nil
		}
		if c == '\n' {
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	return Token{}, &LexError{Line: line, Col: col, Char: quote}
}

func (l *Lexer) lexNumber(line, col int) (Token, error) {
	var sb strings.Builder
	if l.input[l.pos] == '-' {
		sb.WriteRune('-')
		l.advance()
	}
	sawDot := false
	for l.pos < len(l.input) {
		c := l.input[l.pos]
		if c == '.' && !sawDot {
			sawDot = true
			sb.WriteRune(c)
			l.advance()
			continue
		}
		if !unicode.IsDigit(c) {
			break
		}
		sb.WriteRune(c)
		l.advance()
	}
	return Token{Kind: TokenNumber, Text: sb.String(), Line: line, Col: col}, nil
}

func (l *Lexer) lexWord(line, col int) (Token, error) {
	var sb strings.Builder
	for l.pos < len(l.input) && isIdentPart(l.input[l.pos]) {
		sb.WriteRune(l.input[l.pos])
		l.advance()
	}

	word := sb.String()
	lower := strings.ToLower(word)
	if keywords[lower] {
		return Token{Kind: TokenKeyword, Text: word, Norm: lower, Line: line, Col: col}, nil
	}
	return Token{Kind: TokenIdent, Text: word, Line: line, Col: col}, nil
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c rune) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
