// Package main implements the accounts API server: user registration,
// identity lookup and session handling over a PostgreSQL store.
package main

import (
	"github.com/joho/godotenv"
)

func main() {
	// A local .env is a development convenience; in production everything
	// comes from real environment variables.
	_ = godotenv.Load()

	Execute()
}
