package scheme

import "YojanaSetu/pkg/response"

var (
	ErrSchemeNotFound      = response.NewError(404, "scheme not found")
	ErrNoPreferencesSaved  = response.NewError(409, "no preferences saved")
	ErrBookmarkNotFound    = response.NewError(404, "bookmark not found")
	ErrBookmarkExists      = response.NewError(409, "scheme already bookmarked")
	ErrPreferenceSaveFail  = response.NewError(500, "failed to save preferences")
	ErrInternalServerError = response.NewError(500, "internal server error")
)
