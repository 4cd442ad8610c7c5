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
	"time"
)

var whitespaceRegexp = regexp.MustCompile(`\s`)

// Eval applies the predicate to one cell. row supplies sibling columns
// for column-operand comparisons and now supplies the evaluation-time
// timestamp. A null source value fails the check regardless of
// negation, except for null-kind checks which inspect nullness
// directly.
func (p *CompiledPredicate) Eval(value Value, row map[string]Value, now time.Time) (bool, error) {
	if p.Check.Kind == CheckNull {
		if p.Negated {
			return !value.IsNull(), nil
		}
		return value.IsNull(), nil
	}

	if value.IsNull() {
		return false, nil
	}

	result, err := p.evalCheck(value, row, now)
	if err != nil {
		return false, err
	}
	if p.Negated {
		return !result, nil
	}
	return result, nil
}

func (p *CompiledPredicate) evalCheck(value Value, row map[string]Value, now time.Time) (bool, error) {
	switch p.Check.Kind {
	case CheckHumanName, CheckMatch:
		if value.Kind != KindString {
			return false, fmt.Errorf("%s check requires a string value, got %s", p.Check.Kind, value.Kind)
		}
		return p.pattern.MatchString(value.Str), nil

	case CheckWhitespace:
		if value.Kind != KindString {
			return false, fmt.Errorf("whitespace check requires a string value, got %s", value.Kind)
		}
		return whitespaceRegexp.MatchString(value.Str), nil

	case CheckValidDate:
		switch value.Kind {
		case KindTime:
			return true, nil
		case KindString:
			_, ok := parseDate(value.Str)
			return ok, nil
		default:
			return false, fmt.Errorf("valid_date check requires a string or date value, got %s", value.Kind)
		}

	case CheckInSet:
		for _, member := range p.Check.Set {
			if valuesEqual(value, member) {
				return true, nil
			}
		}
		return false, nil

	case CheckGreaterThan, CheckLessThan, CheckEqual:
		operand, ok, err := p.resolveOperand(row, now)
		if err != nil {
			return false, err
		}
		if !ok {
			// null comparison operand, check fails
			return false, nil
		}
		cmp, err := compareValues(value, operand)
		if err != nil {
			return false, err
		}
		switch p.Check.Kind {
		case CheckGreaterThan:
			return cmp > 0, nil
		case CheckLessThan:
			return cmp < 0, nil
		default:
			return cmp == 0, nil
		}

	default:
		return false, fmt.Errorf("unknown check kind %d", p.Check.Kind)
	}
}

// resolveOperand produces the comparison target. The bool result is
// false when the operand resolves to null.
func (p *CompiledPredicate) resolveOperand(row map[string]Value, now time.Time) (Value, bool, error) {
	switch p.Check.Operand.Kind {
	case OperandNow:
		return TimeValue(now), true, nil
	case OperandLiteral:
		return p.Check.Operand.Literal, true, nil
	case OperandColumn:
		value, ok := row[p.Check.Operand.Column]
		if !ok {
			return Value{}, false, fmt.Errorf("comparison column %q not present in dataset", p.Check.Operand.Column)
		}
		if value.IsNull() {
			return Value{}, false, nil
		}
		return value, true, nil
	default:
		return Value{}, false, fmt.Errorf("check %s has no comparison operand", p.CheckTag)
	}
}
