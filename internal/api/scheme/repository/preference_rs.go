package schemeRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

var ErrPreferenceProfileNotFound = errors.New("preference profile not found")

type PreferenceProfileDB struct {
	UserID         sql.NullString `db:"user_id"`
	Categories     pq.StringArray `db:"categories"`
	Eligibility    pq.StringArray `db:"eligibility"`
	SchemeTypes    pq.StringArray `db:"scheme_types"`
	IncomeLevel    sql.NullString `db:"income_level"`
	MinAge         sql.NullInt64  `db:"min_age"`
	MaxAge         sql.NullInt64  `db:"max_age"`
	Location       sql.NullString `db:"location"`
	UsePreferences bool           `db:"use_preferences"`
	UpdatedAt      sql.NullTime   `db:"updated_at"`
}

func (r *preferenceRepository) GetPreferenceProfile(ctx context.Context, userID string) (entity.PreferenceProfile, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetPreferenceProfile, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPreferenceProfile named query preparation err")
		return entity.PreferenceProfile{}, err
	}
	query = r.q.Rebind(query)

	var profileDB PreferenceProfileDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&profileDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.PreferenceProfile{}, ErrPreferenceProfileNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetPreferenceProfile execution err")
		return entity.PreferenceProfile{}, err
	}

	return makePreferenceProfile(profileDB), nil
}

func (r *preferenceRepository) UpsertPreferenceProfile(ctx context.Context, profile entity.PreferenceProfile) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id":         profile.UserID,
		"categories":      pq.StringArray(profile.Categories),
		"eligibility":     pq.StringArray(profile.Eligibility),
		"scheme_types":    pq.StringArray(profile.SchemeTypes),
		"income_level":    profile.IncomeLevel,
		"min_age":         nullableInt(profile.MinAge),
		"max_age":         nullableInt(profile.MaxAge),
		"location":        profile.Location,
		"use_preferences": profile.UsePreferences,
		"updated_at":      time.Now(),
	}

	query, args, err := sqlx.Named(queryUpsertPreferenceProfile, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertPreferenceProfile named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertPreferenceProfile execution err")
		return err
	}

	return nil
}

func makePreferenceProfile(profileDB PreferenceProfileDB) entity.PreferenceProfile {
	profile := entity.PreferenceProfile{
		UserID:         profileDB.UserID.String,
		Categories:     profileDB.Categories,
		Eligibility:    profileDB.Eligibility,
		SchemeTypes:    profileDB.SchemeTypes,
		IncomeLevel:    profileDB.IncomeLevel.String,
		Location:       profileDB.Location.String,
		UsePreferences: profileDB.UsePreferences,
		UpdatedAt:      profileDB.UpdatedAt.Time,
	}

	if profileDB.MinAge.Valid {
		minAge := int(profileDB.MinAge.Int64)
		profile.MinAge = &minAge
	}
	if profileDB.MaxAge.Valid {
		maxAge := int(profileDB.MaxAge.Int64)
		profile.MaxAge = &maxAge
	}

	return profile
}

func nullableInt(value *int) interface{} {
	if value == nil {
		return nil
	}
	return *value
}
