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

import "fmt"

// TokenKind classifies a lexed token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenNewline
	TokenKeyword
	TokenIdent
	TokenNumber
	TokenString
	TokenLBracket
	TokenRBracket
	TokenComma
)

func (k TokenKind) String() string {
	switch k {
	case TokenEOF:
		return "end of input"
	case TokenNewline:
		return "newline"
	case TokenKeyword:
		return "keyword"
	case TokenIdent:
		return "identifier"
	case TokenNumber:
		return "number"
	case TokenString:
		return "string"
	case TokenLBracket:
		return "'['"
	case TokenRBracket:
		return "']'"
	case TokenComma:
		return "','"
	default:
		return "unknown"
	}
}

// Token is one lexical unit of a rule definition. Text preserves the
// original spelling; for keywords Norm holds the lowercased form.
type Token struct {
	Kind TokenKind
	Text string
	Norm string
	Line int
	Col  int
}

func (t Token) String() string {
	if t.Kind == TokenEOF || t.Kind == TokenNewline {
		return t.Kind.String()
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// keywords of the rule grammar, matched case-insensitively.
var keywords = map[string]bool{
	"must":       true,
	"should":     true,
	"be":         true,
	"not":        true,
	"in":         true,
	"have":       true,
	"match":      true,
	"greater":    true,
	"less":       true,
	"equal":      true,
	"than":       true,
	"to":         true,
	"now":        true,
	"null":       true,
	"human_name": true,
	"whitespace": true,
	"valid_date": true,
}
