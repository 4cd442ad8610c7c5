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
	"reflect"
	"testing"
)

func TestParseRuleDefinition(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected *RuleDefinition
	}{
		{
			name: "null check with negation",
			text: "Person\n  Name must not be null",
			expected: &RuleDefinition{
				Table: "Person",
				Rules: []ColumnRule{
					{
						Column:   "Name",
						Severity: SeverityMust,
						Negated:  true,
						Check:    Check{Kind: CheckNull},
						Line:     2,
					},
				},
			},
		},
		{
			name: "human_name and whitespace checks",
			text: "Person\n  Name should be human_name\n  Name must not have whitespace",
			expected: &RuleDefinition{
				Table: "Person",
				Rules: []ColumnRule{
					{
						Column:   "Name",
						Severity: SeverityShould,
						Check:    Check{Kind: CheckHumanName},
						Line:     2,
					},
					{
						Column:   "Name",
						Severity: SeverityMust,
						Negated:  true,
						Check:    Check{Kind: CheckWhitespace},
						Line:     3,
					},
				},
			},
		},
		{
			name: "comparison against now",
			text: "Person\n  BirthDate should be less than now",
			expected: &RuleDefinition{
				Table: "Person",
				Rules: []ColumnRule{
					{
						Column:   "BirthDate",
						Severity: SeverityShould,
						Check: Check{
							Kind:    CheckLessThan,
							Operand: Operand{Kind: OperandNow},
						},
						Line: 2,
					},
				},
			},
		},
		{
			name: "comparison against literal and sibling column",
			text: "Trip\n  Fare must be greater than 0\n  PickupAt must be less than DropoffAt",
			expected: &RuleDefinition{
				Table: "Trip",
				Rules: []ColumnRule{
					{
						Column:   "Fare",
						Severity: SeverityMust,
						Check: Check{
							Kind:    CheckGreaterThan,
							Operand: Operand{Kind: OperandLiteral, Literal: IntValue(0)},
						},
						Line: 2,
					},
					{
						Column:   "PickupAt",
						Severity: SeverityMust,
						Check: Check{
							Kind:    CheckLessThan,
							Operand: Operand{Kind: OperandColumn, Column: "DropoffAt"},
						},
						Line: 3,
					},
				},
			},
		},
		{
			name: "set membership",
			text: `Order
  Status must be in ["new", "paid", "shipped"]`,
			expected: &RuleDefinition{
				Table: "Order",
				Rules: []ColumnRule{
					{
						Column:   "Status",
						Severity: SeverityMust,
						Check: Check{
							Kind: CheckInSet,
							Set: []Value{
								StringValue("new"),
								StringValue("paid"),
								StringValue("shipped"),
							},
						},
						Line: 2,
					},
				},
			},
		},
		{
			name: "pattern match and date checks",
			text: "Person\n  Zip must match \"^[0-9]{5}$\"\n  BirthDate should be valid_date",
			expected: &RuleDefinition{
				Table: "Person",
				Rules: []ColumnRule{
					{
						Column:   "Zip",
						Severity: SeverityMust,
						Check:    Check{Kind: CheckMatch, Pattern: "^[0-9]{5}$"},
						Line:     2,
					},
					{
						Column:   "BirthDate",
						Severity: SeverityShould,
						Check:    Check{Kind: CheckValidDate},
						Line:     3,
					},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseRuleDefinition(tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(def, tt.expected) {
				t.Errorf("expected %+v, got %+v", tt.expected, def)
			}
		})
	}
}

func TestParseRuleDefinitionErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "missing severity keyword",
			text: "Person\n  Name be human_name",
		},
		{
			name: "missing column rules",
			text: "Person",
		},
		{
			name: "severity without check",
			text: "Person\n  Name must",
		},
		{
			name: "unknown be-check",
			text: "Person\n  Name must be uppercase",
		},
		{
			name: "have without whitespace",
			text: "Person\n  Name must have digits",
		},
		{
			name: "match without pattern",
			text: "Person\n  Name must match",
		},
		{
			name: "unclosed set",
			text: "Person\n  Status must be in [\"a\", \"b\"",
		},
		{
			name: "missing table name",
			text: "must be null",
		},
		{
			name: "trailing garbage after check",
			text: "Person\n  Name must be null extra",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def, err := ParseRuleDefinition(tt.text)
			if err == nil {
				t.Fatalf("expected a parse error, got %+v", def)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T: %v", err, err)
			}
			if len(parseErr.Expected) == 0 {
				t.Error("parse error carries no expected alternatives")
			}
		})
	}
}

func TestParseErrorReportsPosition(t *testing.T) {
	_, err := ParseRuleDefinition("Person\n  Name be human_name")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Token.Line != 2 {
		t.Errorf("expected error on line 2, got line %d", parseErr.Token.Line)
	}
	if parseErr.Token.Norm != "be" {
		t.Errorf("expected offending token 'be', got %q", parseErr.Token.Text)
	}
}
