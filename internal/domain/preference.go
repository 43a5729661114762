package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_preference_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain PreferenceRepository
//go:generate mockgen -destination mocks/mock_preference_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain PreferenceService

// MaxPreferenceDocumentBytes bounds the stored JSON document
const MaxPreferenceDocumentBytes = 64 << 10

// UserPreference is a JSON document per user guarded by a version counter.
// A user with no row is at version 0.
type UserPreference struct {
	UserID    string          `json:"user_id"`
	Document  json.RawMessage `json:"document"`
	Version   int64           `json:"version"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CASResult is the outcome of a compare-and-swap write. Conflict is a normal
// result, not an error: the caller reloads and retries.
type CASResult[T any] struct {
	Updated        bool  `json:"updated"`
	Conflict       bool  `json:"conflict"`
	CurrentVersion int64 `json:"current_version"`
	Value          *T    `json:"value,omitempty"`
}

type GetPreferenceRequest struct {
	Path string `json:"path,omitempty"`
}

type UpdatePreferenceRequest struct {
	Document json.RawMessage `json:"document"`
	Version  int64           `json:"version"`
}

func (r *UpdatePreferenceRequest) Validate() error {
	if len(r.Document) == 0 {
		return NewValidationError("document is required")
	}
	if len(r.Document) > MaxPreferenceDocumentBytes {
		return NewValidationError("document is too large")
	}
	if !gjson.ValidBytes(r.Document) || !gjson.ParseBytes(r.Document).IsObject() {
		return NewValidationError("document must be a JSON object")
	}
	if r.Version < 0 {
		return NewValidationError("version must not be negative")
	}
	return nil
}

// PreferenceRepository backs user_preferences
type PreferenceRepository interface {
	Get(ctx context.Context, tx *tenancy.Tx, userID string) (*UserPreference, error)
	// CompareAndSwap writes document only if the stored version equals
	// expectedVersion, bumping the version by one
	CompareAndSwap(ctx context.Context, tx *tenancy.Tx, userID string, expectedVersion int64, document json.RawMessage) (*CASResult[UserPreference], error)
}

type PreferenceService interface {
	// GetPreference returns the document, or the value at path when path is set
	GetPreference(ctx context.Context, schema string, userID string, path string) (*UserPreference, error)
	UpdatePreference(ctx context.Context, schema string, userID string, req *UpdatePreferenceRequest) (*CASResult[UserPreference], error)
}
