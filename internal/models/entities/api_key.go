package entities

import "time"

// ApiKey authenticates an ingestion client (telemetry uploader or file
// importer). Only the SHA-256 digest of the key is stored.
type ApiKey struct {
	ID         string     `db:"id"`
	Name       string     `db:"name"`
	KeyHash    string     `db:"key_hash"`
	IsActive   bool       `db:"is_active"`
	CreatedAt  time.Time  `db:"created_at"`
	LastUsedAt *time.Time `db:"last_used_at"`
}
