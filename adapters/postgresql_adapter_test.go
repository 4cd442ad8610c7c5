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
	"io"
	"log/slog"
	"testing"
)

func createMockPostgresqlAdapter() *PostgresqlDataSourceAdapter {
	return &PostgresqlDataSourceAdapter{
		db:     nil, // no connection needed for RenderRuleSet tests
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestPostgresqlAdapter_RenderRuleSet(t *testing.T) {
	adapter := createMockPostgresqlAdapter()

	tests := []struct {
		name        string
		rules       string
		dataset     string
		whereClause string
		expectedSQL string
	}{
		{
			name:        "null check with negation",
			rules:       "Person\n  Name must not be null",
			dataset:     "people",
			expectedSQL: `SELECT "Name" IS NOT NULL AS "dqs_Name_not_null" FROM people`,
		},
		{
			name:        "human_name check",
			rules:       "Person\n  Name should be human_name",
			dataset:     "people",
			expectedSQL: `SELECT COALESCE("Name" ~ '^(?:[A-Za-z\-'']+\s?)*$', FALSE) AS "dqw_Name_human_name" FROM people`,
		},
		{
			name:        "whitespace check with negation",
			rules:       "Person\n  Name must not have whitespace",
			dataset:     "people",
			expectedSQL: `SELECT COALESCE(NOT ("Name" ~ '\s'), FALSE) AS "dqs_Name_not_whitespace" FROM people`,
		},
		{
			name:        "past check",
			rules:       "Person\n  BirthDate should be less than now",
			dataset:     "people",
			expectedSQL: `SELECT COALESCE("BirthDate" < now(), FALSE) AS "dqw_BirthDate_lt_now" FROM people`,
		},
		{
			name:        "set membership with where clause",
			rules:       `Order
  Status must be in ["new", "paid"]`,
			dataset:     "orders",
			whereClause: "created_at >= '2025-01-01'",
			expectedSQL: `SELECT COALESCE("Status" IN ('new', 'paid'), FALSE) AS "dqs_Status_in_set" FROM orders WHERE created_at >= '2025-01-01'`,
		},
		{
			name:        "column comparison",
			rules:       "Trip\n  PickupAt must be less than DropoffAt",
			dataset:     "trips",
			expectedSQL: `SELECT COALESCE("PickupAt" < "DropoffAt", FALSE) AS "dqs_PickupAt_lt_DropoffAt" FROM trips`,
		},
		{
			name:        "valid_date check",
			rules:       "Person\n  BirthDate should be valid_date",
			dataset:     "people",
			expectedSQL: `SELECT COALESCE("BirthDate" ~ '^\d{4}-\d{2}-\d{2}', FALSE) AS "dqw_BirthDate_valid_date" FROM people`,
		},
		{
			name:    "multiple predicates keep rule order",
			rules:   "Person\n  Name must not be null\n  Age must be greater than 0",
			dataset: "people",
			expectedSQL: `SELECT "Name" IS NOT NULL AS "dqs_Name_not_null", ` +
				`COALESCE("Age" > 0, FALSE) AS "dqs_Age_gt_lit" FROM people`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := mustCompile(t, tt.rules)
			sqlQuery, err := adapter.RenderRuleSet(rs, tt.dataset, tt.whereClause)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sqlQuery != tt.expectedSQL {
				t.Errorf("expected SQL:\n%s\ngot:\n%s", tt.expectedSQL, sqlQuery)
			}
		})
	}
}
