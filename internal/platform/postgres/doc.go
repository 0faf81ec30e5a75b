// Package postgres provides the PostgreSQL implementation of the store
// interfaces. It runs on the pgx stdlib driver through database/sql and
// translates PostgreSQL error codes into the store's sentinel errors.
package postgres
