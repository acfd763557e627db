// Package sqltable reads SQL query results as tablefor records
// described by a tablefor.MapModel with the result columns as schema.
package sqltable

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/domonda/go-tablefor"
)

// ScanRecords reads all rows as map[string]any records
// of a model with the passed singular name.
// The result columns become the schema columns of the model,
// so the default exclusions like "id" and "created_at" apply.
// rows is closed before returning.
func ScanRecords(ctx context.Context, rows Rows, modelName string) (*tablefor.Records, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	model := tablefor.NewMapModel(modelName, tablefor.Schema{Columns: columns})
	records := tablefor.NewRecords(model)

	for rows.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		scannedValues := make([]any, len(columns))
		valueScanners := make([]any, len(columns))
		for i := range valueScanners {
			valueScanners[i] = valueScanner{&scannedValues[i]}
		}
		err = rows.Scan(valueScanners...)
		if err != nil {
			return nil, fmt.Errorf("scanning %s row %d: %w", modelName, len(records.Rows), err)
		}
		record := make(map[string]any, len(columns))
		for i, column := range columns {
			record[column] = scannedValues[i]
		}
		records.Rows = append(records.Rows, record)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// QueryRecords executes query and reads the result with ScanRecords.
func QueryRecords(ctx context.Context, db Queryer, modelName, query string, args ...any) (*tablefor.Records, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying %s records: %w", modelName, err)
	}
	return ScanRecords(ctx, rows, modelName)
}

var _ sql.Scanner = new(valueScanner)

type valueScanner struct {
	dest *any
}

// Scan implements the database/sql.Scanner interface.
func (s valueScanner) Scan(src any) error {
	if b, ok := src.([]byte); ok {
		// Copy because the bytes won't be valid after this method call,
		// text columns of some drivers are returned as []byte
		src = string(b)
	}
	*s.dest = src
	return nil
}
