// Package service contains the account business logic: registration,
// identity lookup and session-state transitions. It is the only package
// allowed to enforce username uniqueness and the login/logout state machine.
package service
