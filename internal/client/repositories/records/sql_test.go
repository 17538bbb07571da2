package records

import (
	"testing"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name       string
		collection string
		filter     client.Filter
		order      *client.Order
		wantSQL    string
		wantArgs   []any
	}{
		{
			name:       "plain",
			collection: "lessons",
			wantSQL:    `SELECT * FROM "lessons"`,
			wantArgs:   []any{},
		},
		{
			name:       "ordered desc",
			collection: "lessons",
			order:      &client.Order{Column: "created_at", Descending: true},
			wantSQL:    `SELECT * FROM "lessons" ORDER BY "created_at" DESC`,
			wantArgs:   []any{},
		},
		{
			name:       "filters sorted and bound",
			collection: "homework",
			filter:     client.Filter{"status": "pending", "lesson_id": "l1"},
			order:      &client.Order{Column: "due_date"},
			wantSQL:    `SELECT * FROM "homework" WHERE "lesson_id" = $1 AND "status" = $2 ORDER BY "due_date" ASC`,
			wantArgs:   []any{"l1", "pending"},
		},
		{
			name:       "identifiers are quoted",
			collection: `lessons"; DROP TABLE lessons; --`,
			filter:     client.Filter{`a"b`: 1},
			wantSQL:    `SELECT * FROM "lessons""; DROP TABLE lessons; --" WHERE "a""b" = $1`,
			wantArgs:   []any{1},
		},
		{
			name:       "empty order column ignored",
			collection: "lessons",
			order:      &client.Order{},
			wantSQL:    `SELECT * FROM "lessons"`,
			wantArgs:   []any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, args, err := buildSelect(tt.collection, tt.filter, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, q)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildSelect_EmptyCollection(t *testing.T) {
	_, _, err := buildSelect("", nil, nil)
	require.ErrorIs(t, err, ErrEmptyCollection)
}

func TestBuildInsert(t *testing.T) {
	q, args, err := buildInsert("homework_submissions", client.Record{
		"student_id":  "s1",
		"homework_id": "h1",
		"file_name":   "essay.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "homework_submissions" ("file_name", "homework_id", "student_id") VALUES ($1, $2, $3)`, q)
	assert.Equal(t, []any{"essay.txt", "h1", "s1"}, args)
}

func TestBuildInsert_Rejects(t *testing.T) {
	_, _, err := buildInsert("", client.Record{"a": 1})
	require.ErrorIs(t, err, ErrEmptyCollection)

	_, _, err = buildInsert("lessons", nil)
	require.ErrorIs(t, err, ErrEmptyRecord)
}
