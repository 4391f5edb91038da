package schemeHandler

import (
	"errors"
	"net/url"
	"time"

	"YojanaSetu/internal/api/scheme"
	contextPkg "YojanaSetu/pkg/context"
	"YojanaSetu/pkg/handlerUtil"
	jwtPkg "YojanaSetu/pkg/jwt"
	"YojanaSetu/pkg/log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SchemeHandler) ListSchemes(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"path":       ctx.Path(),
	}).Debug("Processing list schemes request")

	criteria := scheme.ParseCriteria(queryValues(ctx))

	response, err := h.schemeService.ListSchemes(c, optionalUserID(ctx), criteria)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "list_schemes")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *SchemeHandler) GetScheme(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	schemeID := ctx.Params("id")
	if schemeID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("scheme id is required"), ctx.Path())
	}

	response, err := h.schemeService.GetScheme(c, optionalUserID(ctx), schemeID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_scheme")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, response)
	}
}

func (h *SchemeHandler) GetSchemeFAQs(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	schemeID := ctx.Params("id")
	if schemeID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("scheme id is required"), ctx.Path())
	}

	faqs, err := h.schemeService.GetSchemeFAQs(c, schemeID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_scheme_faqs")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"faqs": faqs,
		})
	}
}

// queryValues converts Fiber's raw query args into url.Values so the
// criteria codec can stay transport-agnostic.
func queryValues(ctx *fiber.Ctx) url.Values {
	values := url.Values{}
	ctx.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

func optionalUserID(ctx *fiber.Ctx) string {
	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return ""
	}
	return userData.ID
}
