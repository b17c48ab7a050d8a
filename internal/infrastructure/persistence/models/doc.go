// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free of ORM concerns.
//
// Structure:
// - base.go: shared id, timestamp and version columns
// - account.go: the chart of accounts
// - journal.go: read-only journal entries and account-referencing transactions
package models
