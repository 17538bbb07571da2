package records

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/jackc/pgx/v5"
)

var (
	ErrEmptyCollection = errors.New("collection name is empty")
	ErrEmptyRecord     = errors.New("record has no columns")
)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// buildSelect renders SELECT * FROM collection [WHERE ...] [ORDER BY ...].
func buildSelect(collection string, filter client.Filter, order *client.Order) (string, []any, error) {
	if collection == "" {
		return "", nil, ErrEmptyCollection
	}

	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(ident(collection))

	args := make([]any, 0, len(filter))
	for i, col := range sortedKeys(filter) {
		if i == 0 {
			sb.WriteString(" WHERE ")
		} else {
			sb.WriteString(" AND ")
		}
		args = append(args, filter[col])
		fmt.Fprintf(&sb, "%s = $%d", ident(col), len(args))
	}

	if order != nil && order.Column != "" {
		fmt.Fprintf(&sb, " ORDER BY %s %s", ident(order.Column), strings.ToUpper(order.Direction()))
	}

	return sb.String(), args, nil
}

// buildInsert renders a single-row INSERT with columns in sorted order.
func buildInsert(collection string, record client.Record) (string, []any, error) {
	if collection == "" {
		return "", nil, ErrEmptyCollection
	}
	if len(record) == 0 {
		return "", nil, ErrEmptyRecord
	}

	cols := sortedKeys(record)
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	args := make([]any, len(cols))
	for i, col := range cols {
		quoted[i] = ident(col)
		params[i] = fmt.Sprintf("$%d", i+1)
		args[i] = record[col]
	}

	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		ident(collection), strings.Join(quoted, ", "), strings.Join(params, ", "))
	return q, args, nil
}
