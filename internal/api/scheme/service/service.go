package schemeService

import (
	"context"
	"net/url"

	"YojanaSetu/internal/api/scheme"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
	"YojanaSetu/pkg/matcher"
	"YojanaSetu/pkg/utils"

	"github.com/sirupsen/logrus"
)

type ISchemeService interface {
	ListSchemes(ctx context.Context, userID string, criteria entity.FilterCriteria) (*scheme.ListSchemesResponse, error)
	GetScheme(ctx context.Context, userID, schemeID string) (*scheme.SchemeResponse, error)
	GetSchemeFAQs(ctx context.Context, schemeID string) ([]scheme.FAQResponse, error)

	LoadFilterState(ctx context.Context, userID string, urlValues url.Values) (*scheme.FilterStateResponse, error)
	UpdateFilter(ctx context.Context, userID string, current entity.FilterCriteria, req scheme.UpdateFilterRequest) (*scheme.FilterStateResponse, error)
	ResetFilter(ctx context.Context, userID string) (*scheme.FilterStateResponse, error)
	ToggleUsePreferences(ctx context.Context, userID string, enabled bool, current entity.FilterCriteria) (*scheme.FilterStateResponse, error)
	SavePreferences(ctx context.Context, userID string, criteria entity.FilterCriteria) error

	IsBookmarked(ctx context.Context, userID, schemeID string) (bool, error)
	AddBookmark(ctx context.Context, userID, schemeID string) error
	RemoveBookmark(ctx context.Context, userID, schemeID string) error
}

type schemeService struct {
	log        *logrus.Logger
	schemeRepo schemeRepository.Repository
	matcher    matcher.IMatcher
	utils      utils.IUtils
}

func New(
	log *logrus.Logger,
	schemeRepo schemeRepository.Repository,
	schemeMatcher matcher.IMatcher,
	utils utils.IUtils,
) ISchemeService {
	return &schemeService{
		log:        log,
		schemeRepo: schemeRepo,
		matcher:    schemeMatcher,
		utils:      utils,
	}
}
