// Package api implements the HTTP transport layer: request decoding,
// validation, and the mapping of domain errors to status codes. It holds
// no business rules; those live in internal/service.
package api
