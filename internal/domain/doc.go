// Package domain holds the core account entities and the validation rules
// they must satisfy, independent of storage and transport concerns.
package domain
