package schemeService

import (
	"context"
	"io"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"YojanaSetu/internal/api/scheme"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
	"YojanaSetu/pkg/matcher"
)

type fakePreferenceStore struct {
	profiles map[string]entity.PreferenceProfile
	getErr   error
	saveErr  error
	saves    int
}

func (f *fakePreferenceStore) GetPreferenceProfile(ctx context.Context, userID string) (entity.PreferenceProfile, error) {
	if f.getErr != nil {
		return entity.PreferenceProfile{}, f.getErr
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return entity.PreferenceProfile{}, schemeRepository.ErrPreferenceProfileNotFound
	}
	return profile, nil
}

func (f *fakePreferenceStore) UpsertPreferenceProfile(ctx context.Context, profile entity.PreferenceProfile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.profiles == nil {
		f.profiles = map[string]entity.PreferenceProfile{}
	}
	f.profiles[profile.UserID] = profile
	f.saves++
	return nil
}

type fakeSchemeRepo struct {
	preferences *fakePreferenceStore
}

func (f *fakeSchemeRepo) NewClient(tx bool) (schemeRepository.Client, error) {
	return schemeRepository.Client{
		Preferences: f.preferences,
		Commit:      func() error { return nil },
		Rollback:    func() error { return nil },
	}, nil
}

func newFilterTestService(prefs *fakePreferenceStore) ISchemeService {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, &fakeSchemeRepo{preferences: prefs}, matcher.New(), nil)
}

func savedProfile(userID string) entity.PreferenceProfile {
	minAge := 30
	return entity.PreferenceProfile{
		UserID:      userID,
		Categories:  []string{"agriculture"},
		IncomeLevel: "low",
		MinAge:      &minAge,
		Location:    "Maharashtra",
	}
}

func TestLoadFilterState(t *testing.T) {
	t.Run("url parameters win over the saved profile", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": savedProfile("user-1"),
		}}
		svc := newFilterTestService(prefs)

		values := url.Values{}
		values.Set(scheme.ParamCategory, "health")

		state, err := svc.LoadFilterState(context.Background(), "user-1", values)
		require.NoError(t, err)
		assert.Equal(t, []string{"health"}, state.Criteria.Categories)
		assert.Equal(t, entity.AnySentinel, state.Criteria.Location)
	})

	t.Run("saved profile applies when the url is bare", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": savedProfile("user-1"),
		}}
		svc := newFilterTestService(prefs)

		state, err := svc.LoadFilterState(context.Background(), "user-1", url.Values{})
		require.NoError(t, err)
		assert.Equal(t, []string{"agriculture"}, state.Criteria.Categories)
		assert.Equal(t, "Maharashtra", state.Criteria.Location)
		require.NotNil(t, state.Criteria.AgeRange)
		assert.Equal(t, 30, *state.Criteria.AgeRange.Min)
	})

	t.Run("empty profile falls back to defaults", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": {UserID: "user-1"},
		}}
		svc := newFilterTestService(prefs)

		state, err := svc.LoadFilterState(context.Background(), "user-1", url.Values{})
		require.NoError(t, err)
		assert.True(t, state.Criteria.IsEmpty())
		assert.Equal(t, "", state.Query)
	})

	t.Run("anonymous users get defaults", func(t *testing.T) {
		svc := newFilterTestService(&fakePreferenceStore{})

		state, err := svc.LoadFilterState(context.Background(), "", url.Values{})
		require.NoError(t, err)
		assert.True(t, state.Criteria.IsEmpty())
	})
}

func TestUpdateFilter(t *testing.T) {
	t.Run("merges a single change and persists the result", func(t *testing.T) {
		prefs := &fakePreferenceStore{}
		svc := newFilterTestService(prefs)

		current := entity.DefaultFilterCriteria()
		current.Categories = []string{"health"}

		location := "Kerala"
		state, err := svc.UpdateFilter(context.Background(), "user-1", current, scheme.UpdateFilterRequest{
			Location: &location,
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"health"}, state.Criteria.Categories)
		assert.Equal(t, "Kerala", state.Criteria.Location)
		assert.Equal(t, 1, prefs.saves)
		assert.Equal(t, "Kerala", prefs.profiles["user-1"].Location)
	})

	t.Run("anonymous updates stay in memory", func(t *testing.T) {
		prefs := &fakePreferenceStore{}
		svc := newFilterTestService(prefs)

		income := "low"
		state, err := svc.UpdateFilter(context.Background(), "", entity.DefaultFilterCriteria(), scheme.UpdateFilterRequest{
			IncomeLevel: &income,
		})
		require.NoError(t, err)
		assert.Equal(t, "low", state.Criteria.IncomeLevel)
		assert.Zero(t, prefs.saves)
	})

	t.Run("age bounds merge one side at a time", func(t *testing.T) {
		svc := newFilterTestService(&fakePreferenceStore{})

		minAge := 18
		current := entity.DefaultFilterCriteria()
		current.AgeRange = &entity.AgeRange{Min: &minAge}

		maxAge := 60
		state, err := svc.UpdateFilter(context.Background(), "", current, scheme.UpdateFilterRequest{
			MaxAge: &maxAge,
		})
		require.NoError(t, err)
		require.NotNil(t, state.Criteria.AgeRange)
		assert.Equal(t, 18, *state.Criteria.AgeRange.Min)
		assert.Equal(t, 60, *state.Criteria.AgeRange.Max)
	})

	t.Run("persist failure surfaces as save error", func(t *testing.T) {
		prefs := &fakePreferenceStore{saveErr: assert.AnError}
		svc := newFilterTestService(prefs)

		_, err := svc.UpdateFilter(context.Background(), "user-1", entity.DefaultFilterCriteria(), scheme.UpdateFilterRequest{})
		assert.ErrorIs(t, err, scheme.ErrPreferenceSaveFail)
	})
}

func TestResetFilter(t *testing.T) {
	t.Run("clears criteria and overwrites the persisted copy", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": savedProfile("user-1"),
		}}
		svc := newFilterTestService(prefs)

		state, err := svc.ResetFilter(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, state.Criteria.IsEmpty())
		assert.False(t, state.Criteria.UsePreferences)

		persisted := prefs.profiles["user-1"]
		assert.Empty(t, persisted.Categories)
		assert.Equal(t, entity.AnySentinel, persisted.Location)
		assert.Nil(t, persisted.MinAge)
	})

	t.Run("reset is idempotent", func(t *testing.T) {
		prefs := &fakePreferenceStore{}
		svc := newFilterTestService(prefs)

		first, err := svc.ResetFilter(context.Background(), "user-1")
		require.NoError(t, err)
		second, err := svc.ResetFilter(context.Background(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestToggleUsePreferences(t *testing.T) {
	t.Run("refused when no profile was ever saved", func(t *testing.T) {
		svc := newFilterTestService(&fakePreferenceStore{})

		_, err := svc.ToggleUsePreferences(context.Background(), "user-1", true, entity.DefaultFilterCriteria())
		assert.ErrorIs(t, err, scheme.ErrNoPreferencesSaved)
	})

	t.Run("refused when the saved profile is empty", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": {UserID: "user-1"},
		}}
		svc := newFilterTestService(prefs)

		_, err := svc.ToggleUsePreferences(context.Background(), "user-1", true, entity.DefaultFilterCriteria())
		assert.ErrorIs(t, err, scheme.ErrNoPreferencesSaved)
	})

	t.Run("enabling overwrites criteria from the profile", func(t *testing.T) {
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": savedProfile("user-1"),
		}}
		svc := newFilterTestService(prefs)

		current := entity.DefaultFilterCriteria()
		current.Categories = []string{"health"}

		state, err := svc.ToggleUsePreferences(context.Background(), "user-1", true, current)
		require.NoError(t, err)
		assert.Equal(t, []string{"agriculture"}, state.Criteria.Categories)
		assert.True(t, state.Criteria.UsePreferences)
		assert.True(t, prefs.profiles["user-1"].UsePreferences)
	})

	t.Run("disabling resets the view but keeps the saved fields", func(t *testing.T) {
		profile := savedProfile("user-1")
		profile.UsePreferences = true
		prefs := &fakePreferenceStore{profiles: map[string]entity.PreferenceProfile{
			"user-1": profile,
		}}
		svc := newFilterTestService(prefs)

		state, err := svc.ToggleUsePreferences(context.Background(), "user-1", false, criteriaFromProfile(profile))
		require.NoError(t, err)
		assert.True(t, state.Criteria.IsEmpty())
		assert.False(t, state.Criteria.UsePreferences)

		persisted := prefs.profiles["user-1"]
		assert.False(t, persisted.UsePreferences)
		assert.Equal(t, []string{"agriculture"}, persisted.Categories)
		assert.Equal(t, "Maharashtra", persisted.Location)
	})
}
