package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"time"

	"github.com/rotisserie/eris"

	"github.com/trustlens/verification-api/internal/entity"
	"github.com/trustlens/verification-api/internal/repository"
)

const (
	apiKeyPrefix = "cvapi_"
	apiKeyBytes  = 32
)

// CreditsPerVerification is the number of credits one verification consumes.
const CreditsPerVerification = 10

// APIKeyService issues and looks up API keys. Raw keys are never persisted;
// only their SHA-256 digest is stored.
type APIKeyService struct {
	repo repository.APIKeysRepository
}

// NewAPIKeyService builds the service on top of the given repository.
func NewAPIKeyService(repo repository.APIKeysRepository) *APIKeyService {
	return &APIKeyService{repo: repo}
}

// HashKey returns the hex SHA-256 digest used to store and look up a key.
func HashKey(apiKey string) string {
	digest := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(digest[:])
}

// CreateKey mints a key with the given credit balance and persists its hash.
// The raw key is returned exactly once and cannot be recovered afterwards.
func (s *APIKeyService) CreateKey(ctx context.Context, userEmail string, credits int) (string, error) {
	raw := make([]byte, apiKeyBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", eris.Wrap(err, "apikeys: generate key")
	}
	apiKey := apiKeyPrefix + base64.RawURLEncoding.EncodeToString(raw)

	key := entity.APIKey{
		KeyHash:          HashKey(apiKey),
		UserEmail:        userEmail,
		CreditsRemaining: credits,
		CreatedAt:        time.Now().UTC(),
		IsActive:         true,
	}
	if err := s.repo.Insert(ctx, key); err != nil {
		return "", eris.Wrap(err, "apikeys: store key")
	}
	return apiKey, nil
}

// Credits reports the remaining balance for a raw key. It returns nil when
// the key is unknown or deactivated.
func (s *APIKeyService) Credits(ctx context.Context, apiKey string) (*int, error) {
	key, err := s.repo.FindByHash(ctx, HashKey(apiKey))
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, eris.Wrap(err, "apikeys: look up key")
	}
	if !key.IsActive {
		return nil, nil
	}
	credits := key.CreditsRemaining
	return &credits, nil
}
