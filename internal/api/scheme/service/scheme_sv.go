package schemeService

import (
	"context"
	"time"

	"YojanaSetu/internal/api/scheme"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *schemeService) ListSchemes(ctx context.Context, userID string, criteria entity.FilterCriteria) (*scheme.ListSchemesResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	schemes, err := repo.Schemes.GetAllSchemes(ctx)
	if err != nil {
		return nil, err
	}

	criteria = scheme.NormalizeCriteria(criteria)
	matched := s.matcher.Match(schemes, criteria)

	bookmarked := map[string]bool{}
	if userID != "" {
		ids, err := repo.Bookmarks.GetBookmarkedSchemeIDs(ctx, userID)
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Warn("Failed to load bookmarks, continuing without them")
		}
		for _, id := range ids {
			bookmarked[id] = true
		}
	}

	responses := make([]scheme.SchemeResponse, 0, len(matched))
	for _, m := range matched {
		responses = append(responses, makeSchemeResponse(m, bookmarked[m.ID]))
	}

	return &scheme.ListSchemesResponse{
		Schemes: responses,
		Total:   len(responses),
		Query:   scheme.EncodeCriteria(criteria),
	}, nil
}

func (s *schemeService) GetScheme(ctx context.Context, userID, schemeID string) (*scheme.SchemeResponse, error) {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	found, err := repo.Schemes.GetSchemeByID(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	isBookmarked := false
	if userID != "" {
		isBookmarked, _ = repo.Bookmarks.IsBookmarked(ctx, userID, schemeID)
	}

	response := makeSchemeResponse(found, isBookmarked)
	return &response, nil
}

func (s *schemeService) GetSchemeFAQs(ctx context.Context, schemeID string) ([]scheme.FAQResponse, error) {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	faqs, err := repo.Schemes.GetFAQsBySchemeID(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	responses := make([]scheme.FAQResponse, 0, len(faqs))
	for _, faq := range faqs {
		responses = append(responses, scheme.FAQResponse{
			ID:       faq.ID,
			Question: faq.Question,
			Answer:   faq.Answer,
		})
	}

	return responses, nil
}

func (s *schemeService) IsBookmarked(ctx context.Context, userID, schemeID string) (bool, error) {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return false, err
	}
	return repo.Bookmarks.IsBookmarked(ctx, userID, schemeID)
}

func (s *schemeService) AddBookmark(ctx context.Context, userID, schemeID string) error {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return err
	}

	if _, err := repo.Schemes.GetSchemeByID(ctx, schemeID); err != nil {
		return err
	}

	exists, err := repo.Bookmarks.IsBookmarked(ctx, userID, schemeID)
	if err != nil {
		return err
	}
	if exists {
		return scheme.ErrBookmarkExists
	}

	bookmarkID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	return repo.Bookmarks.CreateBookmark(ctx, entity.Bookmark{
		ID:        bookmarkID,
		UserID:    userID,
		SchemeID:  schemeID,
		CreatedAt: time.Now(),
	})
}

func (s *schemeService) RemoveBookmark(ctx context.Context, userID, schemeID string) error {
	repo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return err
	}
	return repo.Bookmarks.DeleteBookmark(ctx, userID, schemeID)
}

func makeSchemeResponse(s entity.Scheme, isBookmarked bool) scheme.SchemeResponse {
	return scheme.SchemeResponse{
		ID:                 s.ID,
		Title:              s.Title,
		Category:           s.Category,
		Description:        s.Description,
		Eligibility:        s.Eligibility,
		Benefits:           s.Benefits,
		ApplicationProcess: s.ApplicationProcess,
		Documents:          s.Documents,
		Deadline:           s.Deadline,
		Website:            s.Website,
		IsBookmarked:       isBookmarked,
		CreatedAt:          s.CreatedAt,
	}
}
