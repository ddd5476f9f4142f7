package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/trustlens/verification-api/internal/database"
	"github.com/trustlens/verification-api/internal/entity"
)

// ErrKeyNotFound is returned when no API key matches the lookup hash.
var (
	ErrKeyNotFound  = errors.New("api key not found")
	ErrKeyDuplicate = errors.New("api key already exists")
)

// APIKeysRepository declares persistence operations for issued API keys.
type APIKeysRepository interface {
	Insert(ctx context.Context, key entity.APIKey) error
	FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, error)
}

// PGXAPIKeysRepository implements APIKeysRepository with pgx.
type PGXAPIKeysRepository struct {
	pool database.Pool
}

// NewPGXAPIKeysRepository instantiates an API keys repository.
func NewPGXAPIKeysRepository(pool database.Pool) *PGXAPIKeysRepository {
	return &PGXAPIKeysRepository{pool: pool}
}

// Insert stores a freshly minted key record.
func (r *PGXAPIKeysRepository) Insert(ctx context.Context, key entity.APIKey) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO api_keys (key_hash, user_email, credits_remaining, created_at, last_used, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
    `, key.KeyHash, key.UserEmail, key.CreditsRemaining, key.CreatedAt, key.LastUsed, key.IsActive)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && strings.Contains(pgErr.Message, "api_keys_pkey") {
			return fmt.Errorf("%w: %v", ErrKeyDuplicate, pgErr)
		}
		return fmt.Errorf("insert api key: %w", err)
	}
	return nil
}

// FindByHash fetches a key record by its SHA-256 digest if present.
func (r *PGXAPIKeysRepository) FindByHash(ctx context.Context, keyHash string) (*entity.APIKey, error) {
	row := r.pool.QueryRow(ctx, `
        SELECT key_hash, user_email, credits_remaining, created_at, last_used, is_active
        FROM api_keys
        WHERE key_hash = $1
    `, keyHash)

	var key entity.APIKey
	if err := row.Scan(&key.KeyHash, &key.UserEmail, &key.CreditsRemaining, &key.CreatedAt, &key.LastUsed, &key.IsActive); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("query api key by hash: %w", err)
	}

	return &key, nil
}
