package client

import (
	"encoding/json"
	"fmt"
)

// Record is a single row as exchanged with a DataStore.
type Record map[string]any

// Filter restricts a query to rows whose columns equal the given values.
type Filter map[string]any

// Order sorts query results by a single column.
type Order struct {
	Column     string
	Descending bool
}

// Direction returns "asc" or "desc".
func (o Order) Direction() string {
	if o.Descending {
		return "desc"
	}
	return "asc"
}

// DecodeRecords converts generic records into typed values using their JSON
// field names.
func DecodeRecords[T any](records []Record) ([]T, error) {
	out := make([]T, 0, len(records))
	for i, r := range records {
		b, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		var v T
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}
