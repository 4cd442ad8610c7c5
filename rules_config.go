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
	"os"

	"gopkg.in/yaml.v3"
)

// RulesFileConfig is the YAML rules file: one rule-definition text
// block per dataset.
type RulesFileConfig struct {
	Version  string       `yaml:"version"`
	RuleSets []RulesEntry `yaml:"rule_sets"`
}

type RulesEntry struct {
	Dataset string `yaml:"dataset"`
	Where   string `yaml:"where,omitempty"`
	Rules   string `yaml:"rules"`

	Compiled *RuleSet `yaml:"-"`
}

// LoadRulesFileConfig reads and decodes a rules file, compiling every
// entry eagerly. The first entry that fails to compile aborts the load
// with the entry's dataset and the offending position.
func LoadRulesFileConfig(fileName string) (*RulesFileConfig, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ReadRulesFileConfig(file)
}

func ReadRulesFileConfig(r io.Reader) (*RulesFileConfig, error) {
	var cfg RulesFileConfig
	decoder := yaml.NewDecoder(r)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	for i := range cfg.RuleSets {
		entry := &cfg.RuleSets[i]
		if entry.Rules == "" {
			return nil, fmt.Errorf("rule set for dataset %q has no rules", entry.Dataset)
		}

		compiled, err := CompileText(entry.Rules)
		if err != nil {
			return nil, fmt.Errorf("rule set for dataset %q: %w", entry.Dataset, err)
		}
		entry.Compiled = compiled
	}

	return &cfg, nil
}
