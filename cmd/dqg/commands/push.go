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
	"github.com/DataBridgeTech/dqgcore/dqg"
	"github.com/spf13/cobra"
)

// NewPushCmd builds and returns the 'push' cobra command.
func NewPushCmd() *cobra.Command {
	var dialect string

	cmd := &cobra.Command{
		Use:   "push <rules.yaml>",
		Short: "Render each rule set as a warehouse SQL query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPush(args[0], dialect)
		},
	}

	cmd.Flags().StringVar(&dialect, "dialect", string(dqgcore.DataSourceTypeClickhouse),
		"Target dialect: clickhouse, postgresql or mysql")
	return cmd
}

func runPush(rulesPath, dialect string) error {
	cfg, err := dqgcore.LoadRulesFileConfig(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	adapter, err := dqg.NewRenderOnlyAdapter(dqgcore.DataSourceType(dialect), logger)
	if err != nil {
		return err
	}

	for _, entry := range cfg.RuleSets {
		sqlQuery, err := adapter.RenderRuleSet(entry.Compiled, entry.Dataset, entry.Where)
		if err != nil {
			return fmt.Errorf("rendering rule set for dataset %q: %w", entry.Dataset, err)
		}
		fmt.Printf("-- dataset: %s\n%s;\n", entry.Dataset, sqlQuery)
	}

	return nil
}
