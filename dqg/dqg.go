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

package dqg

import (
	"fmt"
	"log/slog"

	"github.com/DataBridgeTech/dqgcore"
	"github.com/DataBridgeTech/dqgcore/adapters"
	"github.com/DataBridgeTech/dqgcore/cnn"
)

const (
	Version = "v0.1.0"
)

func GetDqgCoreLibVersion() string {
	return Version
}

// NewDataSourceAdapter opens a connection to the data source and wraps
// it in the matching grading adapter.
func NewDataSourceAdapter(dataSource *dqgcore.DataSource, logger *slog.Logger) (dqgcore.DataSourceAdapter, error) {
	switch dataSource.Type {
	case dqgcore.DataSourceTypeClickhouse:
		connection, err := cnn.NewClickhouseConnection(dataSource.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
		}
		return adapters.NewClickhouseDataSourceAdapter(connection, logger), nil
	case dqgcore.DataSourceTypePostgresql:
		connection, err := cnn.NewPostgresqlConnection(dataSource.Configuration)
		if err != nil {
			return nil, fmt.Errorf("failed to create postgresql connection: %w", err)
		}
		return adapters.NewPostgresqlDataSourceAdapter(connection, logger), nil
	case dqgcore.DataSourceTypeMysql:
		connection, err := cnn.NewMysqlConnection(dataSource.Configuration, 16)
		if err != nil {
			return nil, fmt.Errorf("failed to create mysql connection: %w", err)
		}
		return adapters.NewMysqlDataSourceAdapter(connection, logger), nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", dataSource.Type)
	}
}

// NewRenderOnlyAdapter returns an adapter without a live connection,
// usable only for RenderRuleSet.
func NewRenderOnlyAdapter(dataSourceType dqgcore.DataSourceType, logger *slog.Logger) (dqgcore.DataSourceAdapter, error) {
	switch dataSourceType {
	case dqgcore.DataSourceTypeClickhouse:
		return adapters.NewClickhouseDataSourceAdapter(nil, logger), nil
	case dqgcore.DataSourceTypePostgresql:
		return adapters.NewPostgresqlDataSourceAdapter(nil, logger), nil
	case dqgcore.DataSourceTypeMysql:
		return adapters.NewMysqlDataSourceAdapter(nil, logger), nil
	default:
		return nil, fmt.Errorf("unsupported data source type: %s", dataSourceType)
	}
}
