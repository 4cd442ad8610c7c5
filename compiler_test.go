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
	"errors"
	"reflect"
	"testing"
)

func TestCompileResultColumnNaming(t *testing.T) {
	text := `Person
  Name must not be null
  Name should be human_name
  Name must not have whitespace
  BirthDate should be less than now
  BirthDate should be valid_date
  Age must be greater than 0
  PickupAt must be less than DropoffAt
  Status should be in ["a", "b"]
  Zip must match "^[0-9]{5}$"`

	rs, err := CompileText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{
		"dqs_Name_not_null",
		"dqw_Name_human_name",
		"dqs_Name_not_whitespace",
		"dqw_BirthDate_lt_now",
		"dqw_BirthDate_valid_date",
		"dqs_Age_gt_lit",
		"dqs_PickupAt_lt_DropoffAt",
		"dqw_Status_in_set",
		"dqs_Zip_match",
	}
	if !reflect.DeepEqual(rs.ResultColumns(), expected) {
		t.Errorf("expected result columns %v, got %v", expected, rs.ResultColumns())
	}

	if rs.Table != "Person" {
		t.Errorf("expected table Person, got %q", rs.Table)
	}

	predicate, ok := rs.Get("dqw_Name_human_name")
	if !ok {
		t.Fatal("predicate dqw_Name_human_name not found")
	}
	if predicate.Severity != SeverityShould {
		t.Errorf("expected should severity, got %s", predicate.Severity)
	}
	if predicate.SourceColumn != "Name" {
		t.Errorf("expected source column Name, got %q", predicate.SourceColumn)
	}
	if predicate.ErrorName != "Name_human_name" {
		t.Errorf("expected error name Name_human_name, got %q", predicate.ErrorName)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	text := `Person
  Name must not be null
  Name should be human_name
  Age must be greater than 18`

	first, err := CompileText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := CompileText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first.ResultColumns(), second.ResultColumns()) {
		t.Errorf("result columns differ between compiles: %v vs %v",
			first.ResultColumns(), second.ResultColumns())
	}
	for _, name := range first.ResultColumns() {
		a, _ := first.Get(name)
		b, _ := second.Get(name)
		if a.Severity != b.Severity {
			t.Errorf("severity for %q differs between compiles", name)
		}
	}
}

func TestCompileDuplicateRule(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{
			name: "identical rules",
			text: "Person\n  Name must be human_name\n  Name must be human_name",
		},
		{
			name: "same check same severity different literal",
			text: "Person\n  Age must be greater than 0\n  Age must be greater than 18",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := CompileText(tt.text)
			if err == nil {
				t.Fatal("expected a duplicate rule error")
			}
			var dupErr *DuplicateRuleError
			if !errors.As(err, &dupErr) {
				t.Fatalf("expected *DuplicateRuleError, got %T: %v", err, err)
			}
			if dupErr.Table != "Person" {
				t.Errorf("expected table Person in error, got %q", dupErr.Table)
			}
			if dupErr.Line == 0 {
				t.Error("duplicate rule error carries no line")
			}
		})
	}
}

func TestCompileSameCheckDifferentSeverity(t *testing.T) {
	// dqs_ and dqw_ prefixes keep the names distinct
	rs, err := CompileText("Person\n  Name must be human_name\n  Name should be human_name")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"dqs_Name_human_name", "dqw_Name_human_name"}
	if !reflect.DeepEqual(rs.ResultColumns(), expected) {
		t.Errorf("expected result columns %v, got %v", expected, rs.ResultColumns())
	}
}

func TestCompileInvalidMatchPattern(t *testing.T) {
	_, err := CompileText("Person\n  Zip must match \"[\"")
	if err == nil {
		t.Fatal("expected an error for an invalid pattern")
	}
}

func TestCompileTextPropagatesParseErrors(t *testing.T) {
	_, err := CompileText("Person\n  Name be human_name")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T: %v", err, err)
	}
}
