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
	"fmt"

	"github.com/DataBridgeTech/dqgcore"
	"github.com/spf13/cobra"
)

// NewValidateCmd builds and returns the 'validate' cobra command.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <rules.yaml>",
		Short: "Compile every rule set in a rules file and report its predicates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func runValidate(rulesPath string) error {
	cfg, err := dqgcore.LoadRulesFileConfig(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	for _, entry := range cfg.RuleSets {
		fmt.Printf("dataset %s (table %s): %d checks\n",
			entry.Dataset, entry.Compiled.Table, entry.Compiled.Len())
		for _, predicate := range entry.Compiled.Predicates() {
			fmt.Printf("  %s [%s] on column %s\n",
				predicate.ResultColumn, predicate.Severity, predicate.SourceColumn)
		}
	}

	logger.Debug("rules file validated", "rule_sets", len(cfg.RuleSets))
	return nil
}
