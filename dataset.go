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
	"time"
)

// ValueKind identifies the runtime type of a cell value.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a single typed cell. The zero value is null.
type Value struct {
	Kind  ValueKind
	Str   string
	Int   int64
	Float float64
	Bool  bool
	Time  time.Time
}

func NullValue() Value             { return Value{Kind: KindNull} }
func StringValue(s string) Value   { return Value{Kind: KindString, Str: s} }
func IntValue(i int64) Value       { return Value{Kind: KindInt, Int: i} }
func FloatValue(f float64) Value   { return Value{Kind: KindFloat, Float: f} }
func BoolValue(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func TimeValue(t time.Time) Value  { return Value{Kind: KindTime, Time: t} }

func (v Value) IsNull() bool { return v.Kind == KindNull }

func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "null"
	case KindString:
		return v.Str
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBool:
		return fmt.Sprintf("%t", v.Bool)
	case KindTime:
		return v.Time.Format(time.RFC3339)
	default:
		return "unknown"
	}
}

// dateLayouts are the accepted textual date formats, tried in order.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// compareValues orders two non-null values, returning -1, 0 or 1.
// Numeric kinds compare across int/float; a string compared against a
// time value is parsed as a date first. Incomparable kinds are an error.
func compareValues(a, b Value) (int, error) {
	if a.Kind == KindTime && b.Kind == KindString {
		if t, ok := parseDate(b.Str); ok {
			b = TimeValue(t)
		}
	}
	if a.Kind == KindString && b.Kind == KindTime {
		if t, ok := parseDate(a.Str); ok {
			a = TimeValue(t)
		}
	}

	switch {
	case a.Kind == KindInt && b.Kind == KindInt:
		return cmpInt(a.Int, b.Int), nil
	case isNumeric(a) && isNumeric(b):
		return cmpFloat(a.asFloat(), b.asFloat()), nil
	case a.Kind == KindString && b.Kind == KindString:
		switch {
		case a.Str < b.Str:
			return -1, nil
		case a.Str > b.Str:
			return 1, nil
		default:
			return 0, nil
		}
	case a.Kind == KindTime && b.Kind == KindTime:
		switch {
		case a.Time.Before(b.Time):
			return -1, nil
		case a.Time.After(b.Time):
			return 1, nil
		default:
			return 0, nil
		}
	case a.Kind == KindBool && b.Kind == KindBool:
		if a.Bool == b.Bool {
			return 0, nil
		}
		if !a.Bool {
			return -1, nil
		}
		return 1, nil
	default:
		return 0, fmt.Errorf("cannot compare %s value with %s value", a.Kind, b.Kind)
	}
}

// valuesEqual reports literal equality for set membership. Unlike
// compareValues it never fails: incomparable kinds are simply not equal.
func valuesEqual(a, b Value) bool {
	if a.IsNull() || b.IsNull() {
		return false
	}
	cmp, err := compareValues(a, b)
	if err != nil {
		return false
	}
	return cmp == 0
}

func isNumeric(v Value) bool { return v.Kind == KindInt || v.Kind == KindFloat }

func (v Value) asFloat() float64 {
	if v.Kind == KindInt {
		return float64(v.Int)
	}
	return v.Float
}

func cmpInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Dataset is a column-oriented in-memory table. Columns are keyed by
// name and share the same row cardinality.
type Dataset struct {
	columnOrder []string
	columns     map[string][]Value
	numRows     int
}

func NewDataset() *Dataset {
	return &Dataset{
		columns: make(map[string][]Value),
	}
}

// AddColumn appends a named column. The first column fixes the row
// cardinality for the dataset.
func (d *Dataset) AddColumn(name string, values []Value) error {
	if _, exists := d.columns[name]; exists {
		return fmt.Errorf("column %q already present in dataset", name)
	}
	if len(d.columnOrder) > 0 && len(values) != d.numRows {
		return fmt.Errorf("column %q has %d rows, dataset has %d", name, len(values), d.numRows)
	}

	if len(d.columnOrder) == 0 {
		d.numRows = len(values)
	}
	d.columnOrder = append(d.columnOrder, name)
	d.columns[name] = values
	return nil
}

func (d *Dataset) Column(name string) ([]Value, bool) {
	values, ok := d.columns[name]
	return values, ok
}

// Columns returns the column names in insertion order.
func (d *Dataset) Columns() []string {
	names := make([]string, len(d.columnOrder))
	copy(names, d.columnOrder)
	return names
}

func (d *Dataset) NumRows() int { return d.numRows }

// Row materializes one row as a name->value map.
func (d *Dataset) Row(i int) map[string]Value {
	row := make(map[string]Value, len(d.columnOrder))
	for _, name := range d.columnOrder {
		row[name] = d.columns[name][i]
	}
	return row
}

// Select returns a new dataset holding only the named columns, sharing
// the underlying column slices.
func (d *Dataset) Select(names []string) (*Dataset, error) {
	out := NewDataset()
	for _, name := range names {
		values, ok := d.columns[name]
		if !ok {
			return nil, fmt.Errorf("column %q not present in dataset", name)
		}
		if err := out.AddColumn(name, values); err != nil {
			return nil, err
		}
	}
	return out, nil
}
