// Package store defines the persistence contracts consumed by the account
// service. The interfaces keep the business logic independent of the
// concrete storage backend; the Postgres implementation lives in
// internal/platform/postgres.
package store
