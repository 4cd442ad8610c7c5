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
	"errors"
	"testing"
)

func TestLexerTokenStream(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "single rule line",
			input: "Name must be null",
			expected: []Token{
				{Kind: TokenIdent, Text: "Name", Line: 1, Col: 1},
				{Kind: TokenKeyword, Text: "must", Norm: "must", Line: 1, Col: 6},
				{Kind: TokenKeyword, Text: "be", Norm: "be", Line: 1, Col: 11},
				{Kind: TokenKeyword, Text: "null", Norm: "null", Line: 1, Col: 14},
				{Kind: TokenEOF, Line: 1, Col: 18},
			},
		},
		{
			name:  "keywords are case-insensitive",
			input: "Name MUST Be Human_Name",
			expected: []Token{
				{Kind: TokenIdent, Text: "Name", Line: 1, Col: 1},
				{Kind: TokenKeyword, Text: "MUST", Norm: "must", Line: 1, Col: 6},
				{Kind: TokenKeyword, Text: "Be", Norm: "be", Line: 1, Col: 11},
				{Kind: TokenKeyword, Text: "Human_Name", Norm: "human_name", Line: 1, Col: 14},
				{Kind: TokenEOF, Line: 1, Col: 24},
			},
		},
		{
			name:  "set literals and punctuation",
			input: `Status must be in ["a", 'b', 3]`,
			expected: []Token{
				{Kind: TokenIdent, Text: "Status", Line: 1, Col: 1},
				{Kind: TokenKeyword, Text: "must", Norm: "must", Line: 1, Col: 8},
				{Kind: TokenKeyword, Text: "be", Norm: "be", Line: 1, Col: 13},
				{Kind: TokenKeyword, Text: "in", Norm: "in", Line: 1, Col: 16},
				{Kind: TokenLBracket, Text: "[", Line: 1, Col: 19},
				{Kind: TokenString, Text: "a", Line: 1, Col: 20},
				{Kind: TokenComma, Text: ",", Line: 1, Col: 23},
				{Kind: TokenString, Text: "b", Line: 1, Col: 25},
				{Kind: TokenComma, Text: ",", Line: 1, Col: 28},
				{Kind: TokenNumber, Text: "3", Line: 1, Col: 30},
				{Kind: TokenRBracket, Text: "]", Line: 1, Col: 31},
				{Kind: TokenEOF, Line: 1, Col: 32},
			},
		},
		{
			name:  "numbers",
			input: "Age must be greater than -1.5",
			expected: []Token{
				{Kind: TokenIdent, Text: "Age", Line: 1, Col: 1},
				{Kind: TokenKeyword, Text: "must", Norm: "must", Line: 1, Col: 5},
				{Kind: TokenKeyword, Text: "be", Norm: "be", Line: 1, Col: 10},
				{Kind: TokenKeyword, Text: "greater", Norm: "greater", Line: 1, Col: 13},
				{Kind: TokenKeyword, Text: "than", Norm: "than", Line: 1, Col: 21},
				{Kind: TokenNumber, Text: "-1.5", Line: 1, Col: 26},
				{Kind: TokenEOF, Line: 1, Col: 30},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokens()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d: %v", len(tt.expected), len(tokens), tokens)
			}
			for i, expected := range tt.expected {
				if tokens[i] != expected {
					t.Errorf("token %d: expected %+v, got %+v", i, expected, tokens[i])
				}
			}
		})
	}
}

func TestLexerNewlineHandling(t *testing.T) {
	input := "\n\nPerson\n\n  Name must be null\n\n"
	tokens, err := NewLexer(input).Tokens()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var kinds []TokenKind
	for _, tok := range tokens {
		kinds = append(kinds, tok.Kind)
	}

	expected := []TokenKind{
		TokenIdent,   // Person
		TokenNewline, // collapsed blank lines
		TokenIdent, TokenKeyword, TokenKeyword, TokenKeyword,
		TokenEOF, // trailing newlines produce no token
	}
	if len(kinds) != len(expected) {
		t.Fatalf("expected kinds %v, got %v", expected, kinds)
	}
	for i := range expected {
		if kinds[i] != expected[i] {
			t.Errorf("token %d: expected kind %s, got %s", i, expected[i], kinds[i])
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		expectedLine int
		expectedCol  int
	}{
		{
			name:         "unrecognized character",
			input:        "Name must be @null",
			expectedLine: 1,
			expectedCol:  14,
		},
		{
			name:         "unterminated string",
			input:        "Name must match \"abc",
			expectedLine: 1,
			expectedCol:  17,
		},
		{
			name:         "error position after newline",
			input:        "Person\n  Name ?",
			expectedLine: 2,
			expectedCol:  8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input).Tokens()
			if err == nil {
				t.Fatal("expected a lex error")
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *LexError, got %T", err)
			}
			if lexErr.Line != tt.expectedLine || lexErr.Col != tt.expectedCol {
				t.Errorf("expected position %d:%d, got %d:%d",
					tt.expectedLine, tt.expectedCol, lexErr.Line, lexErr.Col)
			}
		})
	}
}
