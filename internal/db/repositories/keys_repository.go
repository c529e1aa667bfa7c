package repositories

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"

	"apexleague/paddock/internal/constants"
	"apexleague/paddock/internal/models/entities"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// KeysRepo authenticates ingestion clients by API key digest.
type KeysRepo struct {
	db *sqlx.DB
}

func NewKeysRepo(db *sqlx.DB) *KeysRepo {
	return &KeysRepo{db: db}
}

// HashKey returns the hex SHA-256 digest stored for a raw key.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// FindByKey looks up an active key by its raw value. Returns nil when the
// key is unknown or inactive.
func (r *KeysRepo) FindByKey(ctx context.Context, raw string) (*entities.ApiKey, error) {
	var key entities.ApiKey
	err := r.db.QueryRowxContext(ctx, constants.GetApiKeyByHash, HashKey(raw)).StructScan(&key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &key, nil
}

// Insert stores a new key and returns its id.
func (r *KeysRepo) Insert(ctx context.Context, name, raw string) (string, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, constants.InsertApiKey, id, name, HashKey(raw)); err != nil {
		return "", err
	}
	return id, nil
}

// Touch records key usage; failures are not interesting to callers.
func (r *KeysRepo) Touch(ctx context.Context, id string) {
	_, _ = r.db.ExecContext(ctx, constants.TouchApiKey, id)
}
