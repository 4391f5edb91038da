package assistantHandler

import (
	"errors"

	"YojanaSetu/pkg/handlerUtil"

	"github.com/gofiber/fiber/v2"
)

// ServeAudio redirects to a short-lived presigned link for a synthesized
// reply stored in object storage.
func (h *AssistantHandler) ServeAudio(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	errHandler := handlerUtil.New(h.log)

	filename := ctx.Params("filename")
	if filename == "" {
		return errHandler.HandleValidationError(ctx, requestID,
			errors.New("filename is required"), ctx.Path())
	}

	url, err := h.assistantService.AudioURL(filename)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "serve_audio")
	}

	return ctx.Redirect(url, fiber.StatusFound)
}
