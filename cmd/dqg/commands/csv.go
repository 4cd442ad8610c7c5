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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DataBridgeTech/dqgcore"
)

// loadCSVDataset reads a CSV file into a dataset. The header row
// supplies column names; cell types are sniffed per cell (int, float,
// bool, date, string). Empty cells become null.
func loadCSVDataset(fileName string) (*dqgcore.Dataset, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readCSVDataset(file)
}

func readCSVDataset(r io.Reader) (*dqgcore.Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	columns := make([][]dqgcore.Value, len(header))
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv row: %w", err)
		}
		for i := range header {
			columns[i] = append(columns[i], sniffValue(record[i]))
		}
	}

	ds := dqgcore.NewDataset()
	for i, name := range header {
		if err := ds.AddColumn(name, columns[i]); err != nil {
			return nil, err
		}
	}
	return ds, nil
}

var csvDateLayouts = []string{time.RFC3339, "2006-01-02"}

func sniffValue(cell string) dqgcore.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return dqgcore.NullValue()
	}

	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return dqgcore.IntValue(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return dqgcore.FloatValue(f)
	}
	if trimmed == "true" || trimmed == "false" {
		return dqgcore.BoolValue(trimmed == "true")
	}
	for _, layout := range csvDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return dqgcore.TimeValue(t)
		}
	}

	// keep the original cell, including surrounding whitespace
	return dqgcore.StringValue(cell)
}
