package schemeService

import (
	"context"
	"errors"
	"net/url"

	"YojanaSetu/internal/api/scheme"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"

	"github.com/sirupsen/logrus"
)

// LoadFilterState resolves the authoritative criteria for a page load. URL
// parameters win entirely when any recognized key is present; otherwise a
// saved profile is loaded when one exists.
func (s *schemeService) LoadFilterState(ctx context.Context, userID string, urlValues url.Values) (*scheme.FilterStateResponse, error) {
	if scheme.HasCriteriaParams(urlValues) {
		criteria := scheme.ParseCriteria(urlValues)
		return makeFilterState(criteria), nil
	}

	if userID != "" {
		repo, err := s.schemeRepo.NewClient(false)
		if err != nil {
			return nil, err
		}

		profile, err := repo.Preferences.GetPreferenceProfile(ctx, userID)
		if err == nil && !profileIsEmpty(profile) {
			return makeFilterState(criteriaFromProfile(profile)), nil
		}
		if err != nil && !errors.Is(err, schemeRepository.ErrPreferenceProfileNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": contextPkg.GetRequestID(ctx),
				"error":      err.Error(),
			}).Warn("Failed to load preference profile, falling back to defaults")
		}
	}

	return makeFilterState(entity.DefaultFilterCriteria()), nil
}

// UpdateFilter merges a single field change into the current criteria and,
// when a user is present, persists the full result keyed by user id. The
// returned query string is the canonical serialized form.
func (s *schemeService) UpdateFilter(ctx context.Context, userID string, current entity.FilterCriteria, req scheme.UpdateFilterRequest) (*scheme.FilterStateResponse, error) {
	merged := applyFilterChange(current, req)

	if userID != "" {
		if err := s.persistCriteria(ctx, userID, merged); err != nil {
			return nil, err
		}
	}

	return makeFilterState(merged), nil
}

// ResetFilter clears every field including the use-preferences flag and
// overwrites any persisted copy with the empty criteria, so a stale profile
// cannot resurrect on the next load.
func (s *schemeService) ResetFilter(ctx context.Context, userID string) (*scheme.FilterStateResponse, error) {
	cleared := entity.DefaultFilterCriteria()

	if userID != "" {
		if err := s.persistCriteria(ctx, userID, cleared); err != nil {
			return nil, err
		}
	}

	return makeFilterState(cleared), nil
}

// ToggleUsePreferences either overwrites the whole criteria from the saved
// profile (refused when the profile is empty) or destructively resets it to
// defaults. It never restores pre-toggle values.
func (s *schemeService) ToggleUsePreferences(ctx context.Context, userID string, enabled bool, current entity.FilterCriteria) (*scheme.FilterStateResponse, error) {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	if !enabled {
		cleared := entity.DefaultFilterCriteria()
		if userID != "" {
			profile, err := repo.Preferences.GetPreferenceProfile(ctx, userID)
			if err == nil {
				profile.UsePreferences = false
				if err := repo.Preferences.UpsertPreferenceProfile(ctx, profile); err != nil {
					return nil, err
				}
			}
		}
		return makeFilterState(cleared), nil
	}

	profile, err := repo.Preferences.GetPreferenceProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, schemeRepository.ErrPreferenceProfileNotFound) {
			return nil, scheme.ErrNoPreferencesSaved
		}
		return nil, err
	}
	if profileIsEmpty(profile) {
		return nil, scheme.ErrNoPreferencesSaved
	}

	profile.UsePreferences = true
	if err := repo.Preferences.UpsertPreferenceProfile(ctx, profile); err != nil {
		return nil, err
	}

	criteria := criteriaFromProfile(profile)
	criteria.UsePreferences = true
	return makeFilterState(criteria), nil
}

func (s *schemeService) SavePreferences(ctx context.Context, userID string, criteria entity.FilterCriteria) error {
	return s.persistCriteria(ctx, userID, criteria)
}

func (s *schemeService) persistCriteria(ctx context.Context, userID string, criteria entity.FilterCriteria) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return err
	}

	if err := repo.Preferences.UpsertPreferenceProfile(ctx, profileFromCriteria(userID, criteria)); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to persist preference profile")
		return scheme.ErrPreferenceSaveFail
	}

	return nil
}

func makeFilterState(criteria entity.FilterCriteria) *scheme.FilterStateResponse {
	criteria = scheme.NormalizeCriteria(criteria)
	return &scheme.FilterStateResponse{
		Criteria: criteria,
		Query:    scheme.EncodeCriteria(criteria),
	}
}

func applyFilterChange(current entity.FilterCriteria, req scheme.UpdateFilterRequest) entity.FilterCriteria {
	merged := scheme.NormalizeCriteria(current)

	if req.Categories != nil {
		merged.Categories = *req.Categories
	}
	if req.Eligibility != nil {
		merged.Eligibility = *req.Eligibility
	}
	if req.SchemeTypes != nil {
		merged.SchemeTypes = *req.SchemeTypes
	}
	if req.IncomeLevel != nil {
		merged.IncomeLevel = *req.IncomeLevel
	}
	if req.Location != nil {
		merged.Location = *req.Location
	}
	if req.MinAge != nil || req.MaxAge != nil {
		ageRange := entity.AgeRange{}
		if merged.AgeRange != nil {
			ageRange = *merged.AgeRange
		}
		if req.MinAge != nil {
			ageRange.Min = req.MinAge
		}
		if req.MaxAge != nil {
			ageRange.Max = req.MaxAge
		}
		merged.AgeRange = &ageRange
	}

	return scheme.NormalizeCriteria(merged)
}

func criteriaFromProfile(profile entity.PreferenceProfile) entity.FilterCriteria {
	criteria := entity.DefaultFilterCriteria()
	criteria.Categories = profile.Categories
	criteria.Eligibility = profile.Eligibility
	criteria.SchemeTypes = profile.SchemeTypes
	if profile.IncomeLevel != "" {
		criteria.IncomeLevel = profile.IncomeLevel
	}
	if profile.Location != "" {
		criteria.Location = profile.Location
	}
	if profile.MinAge != nil || profile.MaxAge != nil {
		criteria.AgeRange = &entity.AgeRange{Min: profile.MinAge, Max: profile.MaxAge}
	}
	criteria.UsePreferences = profile.UsePreferences
	return scheme.NormalizeCriteria(criteria)
}

func profileFromCriteria(userID string, criteria entity.FilterCriteria) entity.PreferenceProfile {
	criteria = scheme.NormalizeCriteria(criteria)

	profile := entity.PreferenceProfile{
		UserID:         userID,
		Categories:     criteria.Categories,
		Eligibility:    criteria.Eligibility,
		SchemeTypes:    criteria.SchemeTypes,
		IncomeLevel:    criteria.IncomeLevel,
		Location:       criteria.Location,
		UsePreferences: criteria.UsePreferences,
	}
	if criteria.AgeRange != nil {
		profile.MinAge = criteria.AgeRange.Min
		profile.MaxAge = criteria.AgeRange.Max
	}
	return profile
}

func profileIsEmpty(profile entity.PreferenceProfile) bool {
	return criteriaFromProfile(profile).IsEmpty()
}
