package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/trustlens/verification-api/internal/entity"
)

// fileKeyRecord is the on-disk shape of one issued key.
type fileKeyRecord struct {
	UserEmail        string     `json:"user_email"`
	CreditsRemaining int        `json:"credits_remaining"`
	CreatedAt        time.Time  `json:"created_at"`
	LastUsed         *time.Time `json:"last_used"`
	IsActive         bool       `json:"is_active"`
}

// fileKeyDB is the on-disk document: key hashes mapped to their records.
type fileKeyDB struct {
	Keys map[string]fileKeyRecord `json:"keys"`
}

// FileAPIKeysRepository implements APIKeysRepository with a local JSON file.
// It suits single-instance deployments where a database is not available.
type FileAPIKeysRepository struct {
	path string
	mu   sync.Mutex
}

// NewFileAPIKeysRepository opens the JSON key database at path, creating an
// empty one when the file does not exist yet.
func NewFileAPIKeysRepository(path string) (*FileAPIKeysRepository, error) {
	r := &FileAPIKeysRepository{path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := r.write(fileKeyDB{Keys: map[string]fileKeyRecord{}}); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat key db: %w", err)
	}
	return r, nil
}

// Insert stores a freshly minted key record.
func (r *FileAPIKeysRepository) Insert(_ context.Context, key entity.APIKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.read()
	if err != nil {
		return err
	}
	if _, ok := db.Keys[key.KeyHash]; ok {
		return ErrKeyDuplicate
	}
	db.Keys[key.KeyHash] = fileKeyRecord{
		UserEmail:        key.UserEmail,
		CreditsRemaining: key.CreditsRemaining,
		CreatedAt:        key.CreatedAt,
		LastUsed:         key.LastUsed,
		IsActive:         key.IsActive,
	}
	return r.write(db)
}

// FindByHash fetches a key record by its SHA-256 digest if present.
func (r *FileAPIKeysRepository) FindByHash(_ context.Context, keyHash string) (*entity.APIKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	db, err := r.read()
	if err != nil {
		return nil, err
	}
	record, ok := db.Keys[keyHash]
	if !ok {
		return nil, ErrKeyNotFound
	}

	return &entity.APIKey{
		KeyHash:          keyHash,
		UserEmail:        record.UserEmail,
		CreditsRemaining: record.CreditsRemaining,
		CreatedAt:        record.CreatedAt,
		LastUsed:         record.LastUsed,
		IsActive:         record.IsActive,
	}, nil
}

func (r *FileAPIKeysRepository) read() (fileKeyDB, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return fileKeyDB{}, fmt.Errorf("read key db: %w", err)
	}
	var db fileKeyDB
	if err := json.Unmarshal(data, &db); err != nil {
		return fileKeyDB{}, fmt.Errorf("decode key db: %w", err)
	}
	if db.Keys == nil {
		db.Keys = make(map[string]fileKeyRecord)
	}
	return db, nil
}

func (r *FileAPIKeysRepository) write(db fileKeyDB) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encode key db: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("write key db: %w", err)
	}
	return nil
}
