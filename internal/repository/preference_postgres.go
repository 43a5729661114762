package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var preferenceTable = versionedTable{
	table:         "user_preferences",
	keyColumn:     "user_id",
	versionColumn: "version",
}

type preferenceRepository struct{}

func NewPreferenceRepository() domain.PreferenceRepository {
	return &preferenceRepository{}
}

// Get returns the stored preferences, or an empty document at version 0 when
// the user has none yet
func (r *preferenceRepository) Get(ctx context.Context, tx *tenancy.Tx, userID string) (*domain.UserPreference, error) {
	pref := domain.UserPreference{UserID: userID}
	var document []byte

	err := tx.QueryRowContext(ctx,
		`SELECT document, version, updated_at FROM user_preferences WHERE user_id = $1`,
		userID,
	).Scan(&document, &pref.Version, &pref.UpdatedAt)
	if err == sql.ErrNoRows {
		pref.Document = json.RawMessage(`{}`)
		return &pref, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	pref.Document = json.RawMessage(document)
	return &pref, nil
}

func (r *preferenceRepository) CompareAndSwap(ctx context.Context, tx *tenancy.Tx, userID string, expectedVersion int64, document json.RawMessage) (*domain.CASResult[domain.UserPreference], error) {
	version, swapped, err := compareAndSwap(ctx, tx, preferenceTable, userID, expectedVersion, map[string]interface{}{
		"document": []byte(document),
	})
	if err != nil {
		return nil, err
	}

	current, err := r.Get(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	if !swapped {
		return &domain.CASResult[domain.UserPreference]{
			Conflict:       true,
			CurrentVersion: current.Version,
			Value:          current,
		}, nil
	}

	return &domain.CASResult[domain.UserPreference]{
		Updated:        true,
		CurrentVersion: version,
		Value:          current,
	}, nil
}
