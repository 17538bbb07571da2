package records

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/zivohub/internal/client/client"
	"github.com/dmitrijs2005/zivohub/internal/dbx"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Database is what PostgresStore needs from a connection: queries plus
// transactions. *pgxpool.Pool and *pgx.Conn satisfy it.
type Database interface {
	dbx.DBTX
	dbx.TxBeginner
}

// PostgresStore implements client.DataStore over PostgreSQL.
type PostgresStore struct {
	db               Database
	statementTimeout time.Duration
}

var _ client.DataStore = (*PostgresStore)(nil)

// Option configures a PostgresStore.
type Option func(*PostgresStore)

// WithStatementTimeout bounds each statement on the server side.
func WithStatementTimeout(d time.Duration) Option {
	return func(s *PostgresStore) { s.statementTimeout = d }
}

// NewPostgresStore returns a store bound to db.
func NewPostgresStore(db Database, opts ...Option) *PostgresStore {
	s := &PostgresStore{db: db}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a connection pool for databaseURL and verifies it with a ping.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: %v", client.ErrUnavailable, err)
	}
	return pool, nil
}

// Query returns rows of collection matching filter, sorted by order.
func (s *PostgresStore) Query(ctx context.Context, collection string, filter client.Filter, order *client.Order) ([]client.Record, error) {
	q, args, err := buildSelect(collection, filter, order)
	if err != nil {
		return nil, err
	}

	var out []client.Record
	err = s.inTx(ctx, pgx.ReadOnly, func(ctx context.Context, tx dbx.DBTX) error {
		rows, err := tx.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		out, err = pgx.CollectRows(rows, toRecord)
		return err
	})
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// Insert adds a single row to collection.
func (s *PostgresStore) Insert(ctx context.Context, collection string, record client.Record) error {
	q, args, err := buildInsert(collection, record)
	if err != nil {
		return err
	}

	err = s.inTx(ctx, pgx.ReadWrite, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.Exec(ctx, q, args...)
		return err
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

func (s *PostgresStore) inTx(ctx context.Context, mode pgx.TxAccessMode, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	return dbx.WithTx(ctx, s.db, pgx.TxOptions{AccessMode: mode}, func(ctx context.Context, tx dbx.DBTX) error {
		if s.statementTimeout > 0 {
			ms := s.statementTimeout.Milliseconds()
			if _, err := tx.Exec(ctx, "SELECT set_config('statement_timeout', $1, true)", fmt.Sprintf("%d", ms)); err != nil {
				return err
			}
		}
		return fn(ctx, tx)
	})
}

// toRecord maps a row to a Record keyed by column name. UUIDs become their
// string form and DATE columns become YYYY-MM-DD, matching what the REST
// gateway returns.
func toRecord(row pgx.CollectableRow) (client.Record, error) {
	vals, err := row.Values()
	if err != nil {
		return nil, err
	}
	fields := row.FieldDescriptions()
	rec := make(client.Record, len(vals))
	for i, fd := range fields {
		rec[fd.Name] = normalize(fd.DataTypeOID, vals[i])
	}
	return rec, nil
}

func normalize(oid uint32, v any) any {
	switch val := v.(type) {
	case [16]byte:
		return uuid.UUID(val).String()
	case time.Time:
		if oid == pgtype.DateOID {
			return val.Format(time.DateOnly)
		}
		return val
	default:
		return v
	}
}

// mapError converts PostgreSQL errors into ServiceErrors with an HTTP-like
// status and everything else into ErrUnavailable.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", client.ErrUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &client.ServiceError{
			StatusCode: statusForSQLState(pgErr.Code),
			Code:       pgErr.Code,
			Message:    pgErr.Message,
		}
	}
	return fmt.Errorf("%w: %v", client.ErrUnavailable, err)
}

func statusForSQLState(code string) int {
	switch code {
	case "42501":
		return http.StatusForbidden
	case "42P01", "42703":
		return http.StatusNotFound
	case "57014":
		return http.StatusRequestTimeout
	}
	if strings.HasPrefix(code, "23") {
		return http.StatusConflict
	}
	return http.StatusBadRequest
}
