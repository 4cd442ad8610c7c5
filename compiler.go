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
	"regexp"
)

// humanNamePattern accepts sequences of alphabetic words, optionally
// containing hyphens and apostrophes, separated by single spaces.
const humanNamePattern = `^(?:[A-Za-z\-']+\s?)*$`

var humanNameRegexp = regexp.MustCompile(humanNamePattern)

// DuplicateRuleError reports two rules compiling to the same result
// column name within one rule set.
type DuplicateRuleError struct {
	Table        string
	ResultColumn string
	Line         int
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule for table %q at line %d: result column %q already defined",
		e.Table, e.Line, e.ResultColumn)
}

// CompiledPredicate is one named boolean check bound to a source
// column. ResultColumn is {dqs_|dqw_}{column}_{tag} and is unique
// within its rule set. ErrorName is the result column without the
// severity prefix, used in row grade summaries.
type CompiledPredicate struct {
	ResultColumn string
	ErrorName    string
	Severity     Severity
	SourceColumn string
	CheckTag     string
	Check        Check
	Negated      bool
	Line         int

	pattern *regexp.Regexp
}

// RuleSet is the ordered output of compiling one rule definition.
type RuleSet struct {
	Table      string
	predicates []*CompiledPredicate
	byName     map[string]*CompiledPredicate
}

// Predicates returns the compiled predicates in rule order.
func (rs *RuleSet) Predicates() []*CompiledPredicate {
	return rs.predicates
}

func (rs *RuleSet) Get(resultColumn string) (*CompiledPredicate, bool) {
	p, ok := rs.byName[resultColumn]
	return p, ok
}

func (rs *RuleSet) Len() int { return len(rs.predicates) }

// ResultColumns returns the result column names in rule order.
func (rs *RuleSet) ResultColumns() []string {
	names := make([]string, len(rs.predicates))
	for i, p := range rs.predicates {
		names[i] = p.ResultColumn
	}
	return names
}

// Compile walks a rule definition and produces its rule set. The
// traversal keeps no state beyond the accumulated rule set, so
// concurrent compiles are safe.
func Compile(def *RuleDefinition) (*RuleSet, error) {
	rs := &RuleSet{
		Table:  def.Table,
		byName: make(map[string]*CompiledPredicate),
	}

	for _, rule := range def.Rules {
		predicate, err := compileRule(&rule)
		if err != nil {
			return nil, err
		}

		if _, exists := rs.byName[predicate.ResultColumn]; exists {
			return nil, &DuplicateRuleError{
				Table:        def.Table,
				ResultColumn: predicate.ResultColumn,
				Line:         rule.Line,
			}
		}
		rs.predicates = append(rs.predicates, predicate)
		rs.byName[predicate.ResultColumn] = predicate
	}

	return rs, nil
}

// CompileText lexes, parses and compiles rule text in one call.
func CompileText(text string) (*RuleSet, error) {
	def, err := ParseRuleDefinition(text)
	if err != nil {
		return nil, err
	}
	return Compile(def)
}

func compileRule(rule *ColumnRule) (*CompiledPredicate, error) {
	tag, err := checkTag(&rule.Check)
	if err != nil {
		return nil, fmt.Errorf("rule for column %q at line %d: %w", rule.Column, rule.Line, err)
	}
	if rule.Negated {
		tag = "not_" + tag
	}

	predicate := &CompiledPredicate{
		ErrorName:    rule.Column + "_" + tag,
		Severity:     rule.Severity,
		SourceColumn: rule.Column,
		CheckTag:     tag,
		Check:        rule.Check,
		Negated:      rule.Negated,
		Line:         rule.Line,
	}
	predicate.ResultColumn = rule.Severity.ResultPrefix() + predicate.ErrorName

	switch rule.Check.Kind {
	case CheckHumanName:
		predicate.pattern = humanNameRegexp
	case CheckMatch:
		compiled, err := regexp.Compile(rule.Check.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule for column %q at line %d: invalid pattern %q: %w",
				rule.Column, rule.Line, rule.Check.Pattern, err)
		}
		predicate.pattern = compiled
	}

	return predicate, nil
}

func checkTag(check *Check) (string, error) {
	switch check.Kind {
	case CheckNull:
		return "null", nil
	case CheckHumanName:
		return "human_name", nil
	case CheckValidDate:
		return "valid_date", nil
	case CheckWhitespace:
		return "whitespace", nil
	case CheckInSet:
		return "in_set", nil
	case CheckGreaterThan:
		return "gt_" + operandTag(&check.Operand), nil
	case CheckLessThan:
		return "lt_" + operandTag(&check.Operand), nil
	case CheckEqual:
		return "eq_" + operandTag(&check.Operand), nil
	case CheckMatch:
		return "match", nil
	default:
		return "", fmt.Errorf("unknown check kind %d", check.Kind)
	}
}

func operandTag(operand *Operand) string {
	switch operand.Kind {
	case OperandNow:
		return "now"
	case OperandColumn:
		return operand.Column
	default:
		return "lit"
	}
}
