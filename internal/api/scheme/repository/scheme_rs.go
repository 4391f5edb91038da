package schemeRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"YojanaSetu/internal/api/scheme"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type SchemeDB struct {
	ID                 sql.NullString `db:"id"`
	Title              sql.NullString `db:"title"`
	Category           sql.NullString `db:"category"`
	Description        sql.NullString `db:"description"`
	Eligibility        sql.NullString `db:"eligibility"`
	Benefits           sql.NullString `db:"benefits"`
	ApplicationProcess sql.NullString `db:"application_process"`
	Documents          sql.NullString `db:"documents"`
	Deadline           sql.NullString `db:"deadline"`
	Website            sql.NullString `db:"website"`
	CreatedAt          time.Time      `db:"created_at"`
	UpdatedAt          time.Time      `db:"updated_at"`
}

func (r *schemeRepository) GetAllSchemes(ctx context.Context) ([]entity.Scheme, error) {
	requestID := contextPkg.GetRequestID(ctx)

	var schemesDB []SchemeDB
	if err := r.q.SelectContext(ctx, &schemesDB, queryGetAllSchemes); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllSchemes execution err")
		return nil, err
	}

	schemes := make([]entity.Scheme, 0, len(schemesDB))
	for _, schemeDB := range schemesDB {
		schemes = append(schemes, makeScheme(schemeDB))
	}

	return schemes, nil
}

func (r *schemeRepository) GetSchemeByID(ctx context.Context, id string) (entity.Scheme, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetSchemeByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSchemeByID named query preparation err")
		return entity.Scheme{}, err
	}
	query = r.q.Rebind(query)

	var schemeDB SchemeDB
	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&schemeDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Scheme{}, scheme.ErrSchemeNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetSchemeByID execution err")
		return entity.Scheme{}, err
	}

	return makeScheme(schemeDB), nil
}

func (r *schemeRepository) GetFAQsBySchemeID(ctx context.Context, schemeID string) ([]entity.SchemeFAQ, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"scheme_id": schemeID,
	}

	query, args, err := sqlx.Named(queryGetFAQsBySchemeID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFAQsBySchemeID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var faqs []entity.SchemeFAQ
	if err := r.q.SelectContext(ctx, &faqs, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFAQsBySchemeID execution err")
		return nil, err
	}

	return faqs, nil
}

func makeScheme(schemeDB SchemeDB) entity.Scheme {
	return entity.Scheme{
		ID:                 schemeDB.ID.String,
		Title:              schemeDB.Title.String,
		Category:           schemeDB.Category.String,
		Description:        schemeDB.Description.String,
		Eligibility:        schemeDB.Eligibility.String,
		Benefits:           schemeDB.Benefits.String,
		ApplicationProcess: schemeDB.ApplicationProcess.String,
		Documents:          schemeDB.Documents.String,
		Deadline:           schemeDB.Deadline.String,
		Website:            schemeDB.Website.String,
		CreatedAt:          schemeDB.CreatedAt,
		UpdatedAt:          schemeDB.UpdatedAt,
	}
}
