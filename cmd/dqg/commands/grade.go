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

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/DataBridgeTech/dqgcore"
	"github.com/spf13/cobra"
)

// NewGradeCmd builds and returns the 'grade' cobra command.
func NewGradeCmd() *cobra.Command {
	var dataset string

	cmd := &cobra.Command{
		Use:   "grade <rules.yaml> <data.csv>",
		Short: "Grade a CSV file in memory and emit one summary per row as JSON lines",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGrade(args[0], args[1], dataset)
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", "", "Grade only the named rule set (default: first entry)")
	return cmd
}

func runGrade(rulesPath, csvPath, dataset string) error {
	cfg, err := dqgcore.LoadRulesFileConfig(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	entry, err := selectRulesEntry(cfg, dataset)
	if err != nil {
		return err
	}

	ds, err := loadCSVDataset(csvPath)
	if err != nil {
		return fmt.Errorf("loading csv: %w", err)
	}
	logger.Debug("csv loaded", "rows", ds.NumRows(), "columns", len(ds.Columns()))

	engine := dqgcore.NewEngine(logger)
	graded, err := engine.Grade(ds, entry.Compiled)
	if err != nil {
		return fmt.Errorf("grading: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	for i, result := range graded.Results {
		line := map[string]interface{}{
			"row":                 i,
			"data_quality_result": result,
		}
		for name, value := range graded.Data.Row(i) {
			line[name] = value.String()
		}
		if err := encoder.Encode(line); err != nil {
			return err
		}
	}

	return nil
}

func selectRulesEntry(cfg *dqgcore.RulesFileConfig, dataset string) (*dqgcore.RulesEntry, error) {
	if len(cfg.RuleSets) == 0 {
		return nil, fmt.Errorf("rules file has no rule sets")
	}
	if dataset == "" {
		return &cfg.RuleSets[0], nil
	}
	for i := range cfg.RuleSets {
		if cfg.RuleSets[i].Dataset == dataset {
			return &cfg.RuleSets[i], nil
		}
	}
	return nil, fmt.Errorf("rules file has no rule set for dataset %q", dataset)
}
