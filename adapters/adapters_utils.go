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

package adapters

import (
	"fmt"
	"strings"

	"github.com/DataBridgeTech/dqgcore"
)

// humanNameSQLPattern mirrors the engine's human_name regexp.
const humanNameSQLPattern = `^(?:[A-Za-z\-']+\s?)*$`

// escapeStringLiteral doubles single quotes for embedding in a SQL
// string literal.
func escapeStringLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// renderLiteral renders a rule literal as a SQL literal.
func renderLiteral(v dqgcore.Value) (string, error) {
	switch v.Kind {
	case dqgcore.KindString:
		return "'" + escapeStringLiteral(v.Str) + "'", nil
	case dqgcore.KindInt:
		return fmt.Sprintf("%d", v.Int), nil
	case dqgcore.KindFloat:
		return fmt.Sprintf("%g", v.Float), nil
	case dqgcore.KindBool:
		return fmt.Sprintf("%t", v.Bool), nil
	case dqgcore.KindTime:
		return "'" + v.String() + "'", nil
	default:
		return "", fmt.Errorf("cannot render %s literal", v.Kind)
	}
}

// renderSetLiterals renders the members of an in_set check.
func renderSetLiterals(set []dqgcore.Value) (string, error) {
	parts := make([]string, len(set))
	for i, member := range set {
		rendered, err := renderLiteral(member)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return strings.Join(parts, ", "), nil
}

// comparisonOperator maps a comparison check kind to its SQL operator.
func comparisonOperator(kind dqgcore.CheckKind) (string, error) {
	switch kind {
	case dqgcore.CheckGreaterThan:
		return ">", nil
	case dqgcore.CheckLessThan:
		return "<", nil
	case dqgcore.CheckEqual:
		return "=", nil
	default:
		return "", fmt.Errorf("check kind %s is not a comparison", kind)
	}
}
