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
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/DataBridgeTech/dqgcore"
)

type MysqlDataSourceAdapter struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewMysqlDataSourceAdapter(db *sql.DB, logger *slog.Logger) dqgcore.DataSourceAdapter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &MysqlDataSourceAdapter{
		db:     db,
		logger: logger,
	}
}

func (a *MysqlDataSourceAdapter) RenderRuleSet(rs *dqgcore.RuleSet, dataset string, whereClause string) (string, error) {
	selectItems := make([]string, 0, rs.Len())
	for _, predicate := range rs.Predicates() {
		expr, err := a.renderPredicate(predicate)
		if err != nil {
			return "", fmt.Errorf("failed to render check %q: %w", predicate.ResultColumn, err)
		}
		selectItems = append(selectItems, fmt.Sprintf("%s AS `%s`", expr, predicate.ResultColumn))
	}

	sqlQuery := fmt.Sprintf("SELECT %s FROM %s", strings.Join(selectItems, ", "), dataset)
	if whereClause != "" {
		sqlQuery = fmt.Sprintf("%s WHERE %s", sqlQuery, whereClause)
	}

	return sqlQuery, nil
}

func (a *MysqlDataSourceAdapter) GradeRuleSet(ctx context.Context, rs *dqgcore.RuleSet, dataset string, whereClause string) ([]dqgcore.DataQualityResult, error) {
	sqlQuery, err := a.RenderRuleSet(rs, dataset, whereClause)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("executing grading query",
		"dataset", dataset,
		"query", sqlQuery)

	startTime := time.Now()
	rows, err := a.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to execute grading query: %v", err)
	}
	defer rows.Close()

	results, err := collectGradedRows(rows, rs)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("grading query completed",
		"dataset", dataset,
		"rows", len(results),
		"duration_ms", time.Since(startTime).Milliseconds())

	return results, nil
}

// renderPredicate produces one boolean expression per check. Non-null
// checks are wrapped in COALESCE(..., FALSE) so that a null source
// value fails the check, matching the in-memory engine.
func (a *MysqlDataSourceAdapter) renderPredicate(p *dqgcore.CompiledPredicate) (string, error) {
	column := fmt.Sprintf("`%s`", p.SourceColumn)

	if p.Check.Kind == dqgcore.CheckNull {
		if p.Negated {
			return fmt.Sprintf("%s IS NOT NULL", column), nil
		}
		return fmt.Sprintf("%s IS NULL", column), nil
	}

	var expr string
	switch p.Check.Kind {
	case dqgcore.CheckHumanName:
		expr = fmt.Sprintf("%s REGEXP '%s'", column, escapeStringLiteral(humanNameSQLPattern))

	case dqgcore.CheckMatch:
		expr = fmt.Sprintf("%s REGEXP '%s'", column, escapeStringLiteral(p.Check.Pattern))

	case dqgcore.CheckWhitespace:
		expr = fmt.Sprintf("%s REGEXP '[[:space:]]'", column)

	case dqgcore.CheckValidDate:
		expr = fmt.Sprintf("STR_TO_DATE(%s, '%%Y-%%m-%%d') IS NOT NULL", column)

	case dqgcore.CheckInSet:
		members, err := renderSetLiterals(p.Check.Set)
		if err != nil {
			return "", err
		}
		expr = fmt.Sprintf("%s IN (%s)", column, members)

	case dqgcore.CheckGreaterThan, dqgcore.CheckLessThan, dqgcore.CheckEqual:
		operator, err := comparisonOperator(p.Check.Kind)
		if err != nil {
			return "", err
		}
		operand, err := a.renderOperand(&p.Check.Operand)
		if err != nil {
			return "", err
		}
		expr = fmt.Sprintf("%s %s %s", column, operator, operand)

	default:
		return "", fmt.Errorf("unsupported check kind %s", p.Check.Kind)
	}

	if p.Negated {
		expr = fmt.Sprintf("NOT (%s)", expr)
	}
	return fmt.Sprintf("COALESCE(%s, FALSE)", expr), nil
}

func (a *MysqlDataSourceAdapter) renderOperand(operand *dqgcore.Operand) (string, error) {
	switch operand.Kind {
	case dqgcore.OperandNow:
		return "NOW()", nil
	case dqgcore.OperandLiteral:
		return renderLiteral(operand.Literal)
	case dqgcore.OperandColumn:
		return fmt.Sprintf("`%s`", operand.Column), nil
	default:
		return "", fmt.Errorf("check has no comparison operand")
	}
}
