package assistantHandler

import (
	assistantService "YojanaSetu/internal/api/assistant/service"
	"YojanaSetu/internal/middleware"
	"YojanaSetu/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type AssistantHandler struct {
	log              *logrus.Logger
	validator        *validator.Validate
	middleware       middleware.Middleware
	assistantService assistantService.IAssistantService
	utils            utils.IUtils
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	as assistantService.IAssistantService,
	utils utils.IUtils,
) *AssistantHandler {
	return &AssistantHandler{
		log:              log,
		validator:        validate,
		middleware:       middleware,
		assistantService: as,
		utils:            utils,
	}
}

func (h *AssistantHandler) Start(srv fiber.Router) {
	assistant := srv.Group("/assistant")

	sessions := assistant.Group("/sessions")
	sessions.Use(h.middleware.NewOptionalTokenMiddleware)

	sessions.Post("/", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Delete("/:id", h.DeleteSession)
	sessions.Post("/:id/messages", h.SendMessage)
	sessions.Put("/:id/language", h.SetLanguage)
	sessions.Post("/:id/voice", h.HandleVoiceTurn)

	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
	sessions.Use("/:id/voice", wsMiddleware)
	sessions.Get("/:id/voice", websocket.New(h.handleVoiceWebSocket))

	assistant.Get("/audio/:filename", h.ServeAudio)
}
