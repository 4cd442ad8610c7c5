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

// DataQualityResult is the per-row grade summary: how many severe
// (must) and warning (should) checks failed, and which ones, in
// compiled rule order.
type DataQualityResult struct {
	SevereCount   int      `json:"severe_count"`
	WarningCount  int      `json:"warning_count"`
	SevereErrors  []string `json:"severe_errors"`
	WarningErrors []string `json:"warning_errors"`
}

// GradedDataset is the engine's final output: the source columns of
// the input dataset plus one DataQualityResult per row.
type GradedDataset struct {
	Data    *Dataset
	Results []DataQualityResult
}

// Aggregate folds an evaluated dataset's boolean result columns into
// one DataQualityResult per row. The predicate columns are dropped;
// only source columns survive into the graded dataset.
func Aggregate(evaluated *Dataset, rs *RuleSet) (*GradedDataset, error) {
	resultColumns := make(map[string]bool, rs.Len())
	flagColumns := make([][]Value, 0, rs.Len())
	for _, predicate := range rs.Predicates() {
		values, ok := evaluated.Column(predicate.ResultColumn)
		if !ok {
			return nil, fmt.Errorf("result column %q missing from evaluated dataset", predicate.ResultColumn)
		}
		resultColumns[predicate.ResultColumn] = true
		flagColumns = append(flagColumns, values)
	}

	results := make([]DataQualityResult, evaluated.NumRows())
	flags := make([]bool, rs.Len())
	for i := range results {
		for j, column := range flagColumns {
			flags[j] = column[i].Kind == KindBool && column[i].Bool
		}
		results[i] = AggregateRow(rs, flags)
	}

	var sourceColumns []string
	for _, name := range evaluated.Columns() {
		if !resultColumns[name] {
			sourceColumns = append(sourceColumns, name)
		}
	}
	data, err := evaluated.Select(sourceColumns)
	if err != nil {
		return nil, err
	}

	return &GradedDataset{Data: data, Results: results}, nil
}

// AggregateRow grades a single row given one pass/fail flag per
// predicate, in rule order. Exposed for adapters that evaluate
// predicates remotely and only ship the flags back.
func AggregateRow(rs *RuleSet, flags []bool) DataQualityResult {
	result := DataQualityResult{
		SevereErrors:  []string{},
		WarningErrors: []string{},
	}

	for i, predicate := range rs.Predicates() {
		if i < len(flags) && flags[i] {
			continue
		}
		if predicate.Severity == SeverityMust {
			result.SevereCount++
			result.SevereErrors = append(result.SevereErrors, predicate.ErrorName)
		} else {
			result.WarningCount++
			result.WarningErrors = append(result.WarningErrors, predicate.ErrorName)
		}
	}

	return result
}
