// Package postgres provides a PostgreSQL-backed catalog store.
//
// Records keep their properties in a JSONB column. Identity, update time and
// metrics are mirrored into plain columns so the catalog can be queried
// directly. Statements are built with squirrel and executed through the
// Querier interface, which both *pgxpool.Pool and pgxmock pools satisfy.
package postgres
