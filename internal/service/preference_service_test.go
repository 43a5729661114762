package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

func TestPreferenceService_GetPreferencePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPreferenceRepository(ctrl)
	svc := NewPreferenceService(&fakeTransactor{}, repo, testLogger(t))
	doc := json.RawMessage(`{"ui":{"theme":"dark","density":"compact"},"locale":"fr"}`)

	repo.EXPECT().Get(gomock.Any(), gomock.Any(), testID1).
		Return(&domain.UserPreference{UserID: testID1, Document: doc, Version: 3}, nil).Times(3)

	whole, err := svc.GetPreference(context.Background(), testSchema, testID1, "")
	require.NoError(t, err)
	assert.JSONEq(t, string(doc), string(whole.Document))

	theme, err := svc.GetPreference(context.Background(), testSchema, testID1, "ui.theme")
	require.NoError(t, err)
	assert.Equal(t, `"dark"`, string(theme.Document))
	assert.Equal(t, int64(3), theme.Version)

	_, err = svc.GetPreference(context.Background(), testSchema, testID1, "ui.missing")
	var notFound *domain.ErrNotFound
	assert.True(t, errors.As(err, &notFound))
}

func TestPreferenceService_UpdateRejectsNonObjects(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := NewPreferenceService(&fakeTransactor{}, mocks.NewMockPreferenceRepository(ctrl), testLogger(t))

	for _, doc := range []string{`[1,2]`, `"text"`, `{"broken":`} {
		_, err := svc.UpdatePreference(context.Background(), testSchema, testID1, &domain.UpdatePreferenceRequest{Document: json.RawMessage(doc)})
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation), doc)
	}
}

// memPreferences applies compare-and-swap under a mutex, the way the guarded
// UPDATE ... WHERE version = $n does in PostgreSQL
type memPreferences struct {
	mu   sync.Mutex
	rows map[string]*domain.UserPreference
}

func (m *memPreferences) Get(_ context.Context, _ *tenancy.Tx, userID string) (*domain.UserPreference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row, ok := m.rows[userID]; ok {
		cp := *row
		return &cp, nil
	}
	return &domain.UserPreference{UserID: userID, Document: json.RawMessage(`{}`)}, nil
}

func (m *memPreferences) CompareAndSwap(_ context.Context, _ *tenancy.Tx, userID string, expected int64, document json.RawMessage) (*domain.CASResult[domain.UserPreference], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var current int64
	if row, ok := m.rows[userID]; ok {
		current = row.Version
	}
	if current != expected {
		cp := *m.rows[userID]
		return &domain.CASResult[domain.UserPreference]{Conflict: true, CurrentVersion: current, Value: &cp}, nil
	}

	row := &domain.UserPreference{UserID: userID, Document: document, Version: current + 1, UpdatedAt: time.Now().UTC()}
	m.rows[userID] = row
	cp := *row
	return &domain.CASResult[domain.UserPreference]{Updated: true, CurrentVersion: row.Version, Value: &cp}, nil
}

func TestPreferenceService_ConcurrentWritersOneWins(t *testing.T) {
	repo := &memPreferences{rows: map[string]*domain.UserPreference{}}
	svc := NewPreferenceService(&fakeTransactor{}, repo, testLogger(t))

	results := make([]*domain.CASResult[domain.UserPreference], 2)
	var wg sync.WaitGroup
	for i, theme := range []string{"dark", "light"} {
		wg.Add(1)
		go func(i int, theme string) {
			defer wg.Done()
			res, err := svc.UpdatePreference(context.Background(), testSchema, testID1, &domain.UpdatePreferenceRequest{
				Document: json.RawMessage(`{"theme":"` + theme + `"}`),
				Version:  0,
			})
			assert.NoError(t, err)
			results[i] = res
		}(i, theme)
	}
	wg.Wait()

	updated, conflicts := 0, 0
	for _, r := range results {
		if r.Updated {
			updated++
		}
		if r.Conflict {
			conflicts++
			assert.Equal(t, int64(1), r.CurrentVersion)
		}
	}
	assert.Equal(t, 1, updated)
	assert.Equal(t, 1, conflicts)

	stored, err := svc.GetPreference(context.Background(), testSchema, testID1, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.Version)
}
