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
	"io"
	"log/slog"
	"time"
)

// CheckEvaluationError reports a check applied to an operand of an
// incompatible type. It aborts the whole evaluation call.
type CheckEvaluationError struct {
	Table        string
	ResultColumn string
	Row          int
	Reason       string
}

func (e *CheckEvaluationError) Error() string {
	return fmt.Sprintf("check %q on table %q failed at row %d: %s",
		e.ResultColumn, e.Table, e.Row, e.Reason)
}

// Engine evaluates compiled rule sets over in-memory datasets.
type Engine struct {
	logger *slog.Logger
	now    func() time.Time
}

func NewEngine(logger *slog.Logger) *Engine {
	if logger == nil {
		// noop logger by default
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		logger: logger,
		now:    time.Now,
	}
}

// Evaluate applies every predicate to every row and returns the input
// dataset plus one boolean result column per predicate. Predicates are
// independent: all are computed for all rows, one column at a time,
// and a single now timestamp is shared by the whole call. A null
// source value fails its check unless the check is a null check.
func (e *Engine) Evaluate(ds *Dataset, rs *RuleSet) (*Dataset, error) {
	out := NewDataset()
	for _, name := range ds.Columns() {
		values, _ := ds.Column(name)
		if err := out.AddColumn(name, values); err != nil {
			return nil, err
		}
	}

	now := e.now()
	startTime := time.Now()

	for _, predicate := range rs.Predicates() {
		source, ok := ds.Column(predicate.SourceColumn)
		if !ok {
			return nil, &CheckEvaluationError{
				Table:        rs.Table,
				ResultColumn: predicate.ResultColumn,
				Row:          -1,
				Reason:       fmt.Sprintf("source column %q not present in dataset", predicate.SourceColumn),
			}
		}

		needsRow := predicate.Check.Operand.Kind == OperandColumn

		results := make([]Value, ds.NumRows())
		for i := 0; i < ds.NumRows(); i++ {
			var row map[string]Value
			if needsRow {
				row = ds.Row(i)
			}

			pass, err := predicate.Eval(source[i], row, now)
			if err != nil {
				return nil, &CheckEvaluationError{
					Table:        rs.Table,
					ResultColumn: predicate.ResultColumn,
					Row:          i,
					Reason:       err.Error(),
				}
			}
			results[i] = BoolValue(pass)
		}

		if err := out.AddColumn(predicate.ResultColumn, results); err != nil {
			return nil, err
		}
	}

	e.logger.Debug("evaluated rule set",
		"table", rs.Table,
		"predicates", rs.Len(),
		"rows", ds.NumRows(),
		"elapsed_ms", time.Since(startTime).Milliseconds())

	return out, nil
}

// Grade evaluates and aggregates in one call, returning the source
// columns plus one DataQualityResult per row.
func (e *Engine) Grade(ds *Dataset, rs *RuleSet) (*GradedDataset, error) {
	evaluated, err := e.Evaluate(ds, rs)
	if err != nil {
		return nil, err
	}
	return Aggregate(evaluated, rs)
}
