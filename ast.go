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

// Severity classifies a rule failure. MUST failures are severe, SHOULD
// failures are warnings.
type Severity int

const (
	SeverityMust Severity = iota
	SeverityShould
)

func (s Severity) String() string {
	if s == SeverityMust {
		return "must"
	}
	return "should"
}

// ResultPrefix is the severity's result-column prefix (dqs_ / dqw_).
func (s Severity) ResultPrefix() string {
	if s == SeverityMust {
		return "dqs_"
	}
	return "dqw_"
}

// CheckKind enumerates the closed set of check variants. Adding a kind
// requires extending every switch over CheckKind; the compiler and the
// adapters treat an unknown kind as an error.
type CheckKind int

const (
	CheckNull CheckKind = iota
	CheckHumanName
	CheckValidDate
	CheckWhitespace
	CheckInSet
	CheckGreaterThan
	CheckLessThan
	CheckEqual
	CheckMatch
)

func (k CheckKind) String() string {
	switch k {
	case CheckNull:
		return "null"
	case CheckHumanName:
		return "human_name"
	case CheckValidDate:
		return "valid_date"
	case CheckWhitespace:
		return "whitespace"
	case CheckInSet:
		return "in_set"
	case CheckGreaterThan:
		return "gt"
	case CheckLessThan:
		return "lt"
	case CheckEqual:
		return "eq"
	case CheckMatch:
		return "match"
	default:
		return "unknown"
	}
}

// OperandKind identifies the right-hand side of a comparison check.
type OperandKind int

const (
	OperandNone OperandKind = iota
	OperandNow
	OperandLiteral
	OperandColumn
)

// Operand is the comparison target of a gt/lt/eq check.
type Operand struct {
	Kind    OperandKind
	Literal Value
	Column  string
}

// Check is one variant of the check union. Operand is set for
// comparison kinds, Set for in_set, Pattern for match.
type Check struct {
	Kind    CheckKind
	Operand Operand
	Set     []Value
	Pattern string
}

// ColumnRule is one parsed rule line: a column, a severity, an optional
// negation and a check. Line is the 1-based source line for error
// reporting.
type ColumnRule struct {
	Column   string
	Severity Severity
	Negated  bool
	Check    Check
	Line     int
}

// RuleDefinition is the AST root for one table's rules. Rule order is
// preserved and determines result-column ordering.
type RuleDefinition struct {
	Table string
	Rules []ColumnRule
}
