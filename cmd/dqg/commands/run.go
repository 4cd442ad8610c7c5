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
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/DataBridgeTech/dqgcore"
	"github.com/DataBridgeTech/dqgcore/dqg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRunCmd builds and returns the 'run' cobra command.
func NewRunCmd() *cobra.Command {
	var configPath string
	var concurrency int

	cmd := &cobra.Command{
		Use:   "run <rules.yaml>",
		Short: "Grade every rule set against the configured data source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd.Context(), args[0], configPath, concurrency)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Data source config file (default: env only)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 4, "Number of rule sets graded concurrently")
	return cmd
}

// loadDataSource reads connection settings from the optional config
// file and DQG_-prefixed environment variables (e.g. DQG_DATASOURCE_HOST).
func loadDataSource(configPath string) (*dqgcore.DataSource, error) {
	v := viper.New()
	v.SetEnvPrefix("DQG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	dataSource := &dqgcore.DataSource{
		Name: v.GetString("datasource.name"),
		Type: dqgcore.DataSourceType(v.GetString("datasource.type")),
		Configuration: dqgcore.ConnectionConfig{
			Host:     v.GetString("datasource.host"),
			Port:     v.GetInt("datasource.port"),
			Database: v.GetString("datasource.database"),
			Username: v.GetString("datasource.username"),
			Password: v.GetString("datasource.password"),
		},
	}

	if dataSource.Type == "" {
		return nil, fmt.Errorf("data source type is not configured")
	}
	return dataSource, nil
}

func runRun(ctx context.Context, rulesPath, configPath string, concurrency int) error {
	cfg, err := dqgcore.LoadRulesFileConfig(rulesPath)
	if err != nil {
		return fmt.Errorf("loading rules: %w", err)
	}

	dataSource, err := loadDataSource(configPath)
	if err != nil {
		return err
	}

	adapter, err := dqg.NewDataSourceAdapter(dataSource, logger)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	graded := make(map[string][]dqgcore.DataQualityResult, len(cfg.RuleSets))

	pool := dqgcore.NewTaskPool(concurrency, logger)
	for i := range cfg.RuleSets {
		entry := cfg.RuleSets[i]
		pool.Enqueue(ctx, entry.Dataset, func(ctx context.Context) error {
			results, err := adapter.GradeRuleSet(ctx, entry.Compiled, entry.Dataset, entry.Where)
			if err != nil {
				return fmt.Errorf("grading dataset %q: %w", entry.Dataset, err)
			}
			mu.Lock()
			graded[entry.Dataset] = results
			mu.Unlock()
			return nil
		})
	}
	pool.Join()

	if errs := pool.Errors(); len(errs) > 0 {
		for _, err := range errs {
			logger.Error("grading failed", "error", err.Error())
		}
		return fmt.Errorf("%d of %d rule sets failed", len(errs), len(cfg.RuleSets))
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, entry := range cfg.RuleSets {
		for i, result := range graded[entry.Dataset] {
			line := map[string]interface{}{
				"dataset":             entry.Dataset,
				"row":                 i,
				"data_quality_result": result,
			}
			if err := encoder.Encode(line); err != nil {
				return err
			}
		}
	}

	return nil
}
