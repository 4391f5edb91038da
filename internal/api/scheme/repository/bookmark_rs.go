package schemeRepository

import (
	"context"

	"YojanaSetu/internal/api/scheme"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func (r *bookmarkRepository) IsBookmarked(ctx context.Context, userID, schemeID string) (bool, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id":   userID,
		"scheme_id": schemeID,
	}

	query, args, err := sqlx.Named(queryIsBookmarked, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IsBookmarked named query preparation err")
		return false, err
	}
	query = r.q.Rebind(query)

	var count int
	if err := r.q.QueryRowxContext(ctx, query, args...).Scan(&count); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("IsBookmarked execution err")
		return false, err
	}

	return count > 0, nil
}

func (r *bookmarkRepository) GetBookmarkedSchemeIDs(ctx context.Context, userID string) ([]string, error) {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id": userID,
	}

	query, args, err := sqlx.Named(queryGetBookmarkedSchemeIDs, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBookmarkedSchemeIDs named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	var ids []string
	if err := r.q.SelectContext(ctx, &ids, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetBookmarkedSchemeIDs execution err")
		return nil, err
	}

	return ids, nil
}

func (r *bookmarkRepository) CreateBookmark(ctx context.Context, bookmark entity.Bookmark) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         bookmark.ID,
		"user_id":    bookmark.UserID,
		"scheme_id":  bookmark.SchemeID,
		"created_at": bookmark.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateBookmark, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateBookmark named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CreateBookmark execution err")
		return err
	}

	return nil
}

func (r *bookmarkRepository) DeleteBookmark(ctx context.Context, userID, schemeID string) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"user_id":   userID,
		"scheme_id": schemeID,
	}

	query, args, err := sqlx.Named(queryDeleteBookmark, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBookmark named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	result, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeleteBookmark execution err")
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return scheme.ErrBookmarkNotFound
	}

	return nil
}
