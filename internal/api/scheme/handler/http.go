package schemeHandler

import (
	schemeService "YojanaSetu/internal/api/scheme/service"
	"YojanaSetu/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type SchemeHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	schemeService schemeService.ISchemeService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	ss schemeService.ISchemeService,
) *SchemeHandler {
	return &SchemeHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		schemeService: ss,
	}
}

func (h *SchemeHandler) Start(srv fiber.Router) {
	schemes := srv.Group("/schemes")

	// Browsing is public; a bearer token, when present, personalizes
	// bookmarks and filter persistence.
	schemes.Use(h.middleware.NewOptionalTokenMiddleware)

	schemes.Get("/", h.ListSchemes)
	schemes.Get("/filters", h.LoadFilterState)
	schemes.Patch("/filters", h.UpdateFilter)
	schemes.Delete("/filters", h.ResetFilter)
	schemes.Post("/filters/preferences", h.TogglePreferences)
	schemes.Put("/filters/preferences", h.SavePreferences)
	schemes.Get("/:id", h.GetScheme)
	schemes.Get("/:id/faqs", h.GetSchemeFAQs)

	bookmarks := schemes.Group("/:id/bookmark")
	bookmarks.Use(h.middleware.NewTokenMiddleware)
	bookmarks.Get("/", h.IsBookmarked)
	bookmarks.Post("/", h.AddBookmark)
	bookmarks.Delete("/", h.RemoveBookmark)
}
