// Package records provides a DataStore backed by a direct PostgreSQL
// connection, for deployments where the client talks to the project
// database instead of the hosted REST gateway.
//
// # Overview
//
// PostgresStore implements client.DataStore on top of pgx. Collections map
// to tables, filters to equality predicates joined with AND, and the
// optional order to a single ORDER BY column. Identifiers are quoted with
// pgx.Identifier; values are always bound as parameters.
//
// # Errors
//
// PostgreSQL errors are reported as *client.ServiceError carrying the
// SQLSTATE code and the server message. Failures to reach the database wrap
// client.ErrUnavailable.
//
// # Concurrency
//
// PostgresStore is safe for concurrent use when backed by a *pgxpool.Pool.
//
// Typical Usage
//
//	pool, _ := records.Open(ctx, databaseURL)
//	store := records.NewPostgresStore(pool, records.WithStatementTimeout(10*time.Second))
//	rows, _ := store.Query(ctx, "lessons", nil, &client.Order{Column: "created_at", Descending: true})
package records
