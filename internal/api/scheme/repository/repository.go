package schemeRepository

import (
	"YojanaSetu/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Schemes:     &schemeRepository{q: sqlExecutor, log: r.log},
		Preferences: &preferenceRepository{q: sqlExecutor, log: r.log},
		Bookmarks:   &bookmarkRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	Schemes interface {
		GetAllSchemes(ctx context.Context) ([]entity.Scheme, error)
		GetSchemeByID(ctx context.Context, id string) (entity.Scheme, error)
		GetFAQsBySchemeID(ctx context.Context, schemeID string) ([]entity.SchemeFAQ, error)
	}

	Preferences interface {
		GetPreferenceProfile(ctx context.Context, userID string) (entity.PreferenceProfile, error)
		UpsertPreferenceProfile(ctx context.Context, profile entity.PreferenceProfile) error
	}

	Bookmarks interface {
		IsBookmarked(ctx context.Context, userID, schemeID string) (bool, error)
		GetBookmarkedSchemeIDs(ctx context.Context, userID string) ([]string, error)
		CreateBookmark(ctx context.Context, bookmark entity.Bookmark) error
		DeleteBookmark(ctx context.Context, userID, schemeID string) error
	}

	Commit   func() error
	Rollback func() error
}

type schemeRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type preferenceRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type bookmarkRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
