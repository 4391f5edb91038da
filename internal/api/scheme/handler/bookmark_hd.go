package schemeHandler

import (
	"errors"
	"time"

	contextPkg "YojanaSetu/pkg/context"
	"YojanaSetu/pkg/handlerUtil"
	jwtPkg "YojanaSetu/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
)

func (h *SchemeHandler) IsBookmarked(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	schemeID := ctx.Params("id")
	if schemeID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("scheme id is required"), ctx.Path())
	}

	bookmarked, err := h.schemeService.IsBookmarked(c, userData.ID, schemeID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "is_bookmarked")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"bookmarked": bookmarked,
		})
	}
}

func (h *SchemeHandler) AddBookmark(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	schemeID := ctx.Params("id")
	if schemeID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("scheme id is required"), ctx.Path())
	}

	if err := h.schemeService.AddBookmark(c, userData.ID, schemeID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "add_bookmark")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, fiber.Map{
			"message": "Scheme bookmarked",
		})
	}
}

func (h *SchemeHandler) RemoveBookmark(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userData, err := jwtPkg.GetUserLoginData(ctx)
	if err != nil {
		return errHandler.HandleUnauthorized(ctx, requestID, "Unauthorized")
	}

	schemeID := ctx.Params("id")
	if schemeID == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("scheme id is required"), ctx.Path())
	}

	if err := h.schemeService.RemoveBookmark(c, userData.ID, schemeID); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "remove_bookmark")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, fiber.Map{
			"message": "Bookmark removed",
		})
	}
}
