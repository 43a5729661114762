package service

import (
	"context"
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type PreferenceService struct {
	transactor tenancy.Transactor
	repo       domain.PreferenceRepository
	logger     logger.Logger
}

func NewPreferenceService(transactor tenancy.Transactor, repo domain.PreferenceRepository, logger logger.Logger) *PreferenceService {
	return &PreferenceService{
		transactor: transactor,
		repo:       repo,
		logger:     logger,
	}
}

func (s *PreferenceService) GetPreference(ctx context.Context, schema string, userID string, path string) (*domain.UserPreference, error) {
	pref, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.UserPreference, error) {
		return s.repo.Get(ctx, tx, userID)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get preferences", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	if path == "" {
		return pref, nil
	}

	value := gjson.GetBytes(pref.Document, path)
	if !value.Exists() {
		return nil, &domain.ErrNotFound{Entity: "preference", ID: path}
	}
	pref.Document = json.RawMessage(value.Raw)
	return pref, nil
}

// UpdatePreference replaces the whole document if req.Version is still
// current. A stale version yields a conflict result, not an error.
func (s *PreferenceService) UpdatePreference(ctx context.Context, schema string, userID string, req *domain.UpdatePreferenceRequest) (*domain.CASResult[domain.UserPreference], error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.CASResult[domain.UserPreference], error) {
		return s.repo.CompareAndSwap(ctx, tx, userID, req.Version, req.Document)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update preferences", err, map[string]interface{}{"user_id": userID})
		return nil, err
	}
	if result.Conflict {
		s.logger.WithFields(map[string]interface{}{
			"tenant_schema":    schema,
			"user_id":          userID,
			"expected_version": req.Version,
			"current_version":  result.CurrentVersion,
		}).Debug("Preference update lost a version race")
	}
	return result, nil
}
