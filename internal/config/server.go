package config

import (
	"fmt"
	"os"

	"YojanaSetu/database/postgres"
	assistantHandler "YojanaSetu/internal/api/assistant/handler"
	assistantService "YojanaSetu/internal/api/assistant/service"
	authHandler "YojanaSetu/internal/api/auth/handler"
	authRepository "YojanaSetu/internal/api/auth/repository"
	authService "YojanaSetu/internal/api/auth/service"
	schemeHandler "YojanaSetu/internal/api/scheme/handler"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	schemeService "YojanaSetu/internal/api/scheme/service"
	"YojanaSetu/internal/middleware"
	"YojanaSetu/pkg/bcrypt"
	"YojanaSetu/pkg/gemini"
	"YojanaSetu/pkg/google"
	"YojanaSetu/pkg/matcher"
	redisPkg "YojanaSetu/pkg/redis"
	"YojanaSetu/pkg/s3"
	"YojanaSetu/pkg/speech"
	"YojanaSetu/pkg/translate"
	"YojanaSetu/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine         *fiber.App
	db             *sqlx.DB
	log            *logrus.Logger
	middleware     middleware.Middleware
	validator      *validator.Validate
	utils          utils.IUtils
	bcryptUtils    bcrypt.IBcrypt
	handlers       []handler
	googleProvider google.ItfGoogle
	sessionStore   redisPkg.ISessionStore
	geminiClient   gemini.IGemini
	transcriber    speech.ITranscriber
	translator     translate.ITranslator
	ttsService     *speech.TTSService
	s3Client       s3.ItfS3
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithDatabase() ServerOption {
	return func(s *Server) error {
		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithGoogleProvider(provider google.ItfGoogle) ServerOption {
	return func(s *Server) error {
		s.googleProvider = provider
		return nil
	}
}

func WithSessionStore(store redisPkg.ISessionStore) ServerOption {
	return func(s *Server) error {
		s.sessionStore = store
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithS3Client() ServerOption {
	return func(s *Server) error {
		client, err := s3.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to initialize S3 client: %v", err)
			}
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		s.s3Client = client
		return nil
	}
}

func WithGeminiClient() ServerOption {
	return func(s *Server) error {
		client, err := gemini.NewGeminiClient()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create Gemini client: %v", err)
			}
			return fmt.Errorf("failed to create Gemini client: %w", err)
		}
		s.geminiClient = client
		return nil
	}
}

func WithTranscriber() ServerOption {
	return func(s *Server) error {
		s.transcriber = speech.NewTranscriptionService()
		return nil
	}
}

func WithTranslator() ServerOption {
	return func(s *Server) error {
		s.translator = translate.New()
		return nil
	}
}

func WithTTSService() ServerOption {
	return func(s *Server) error {
		s.ttsService = speech.NewTTSService(
			os.Getenv("ELEVENLABS_API_KEY"),
			os.Getenv("ELEVENLABS_VOICE_ID"),
		)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithBcryptUtils() ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = bcrypt.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Scheme Domain
	schemeRepo := schemeRepository.New(s.db, s.log)
	schemeMatcher := matcher.New()
	schemeServices := schemeService.New(s.log, schemeRepo, schemeMatcher, s.utils)
	schemeHandlers := schemeHandler.New(s.log, s.validator, s.middleware, schemeServices)

	// Auth Domain
	authRepo := authRepository.New(s.db, s.log)
	authServices := authService.New(s.log, authRepo, schemeRepo, s.googleProvider, s.bcryptUtils, s.utils)
	authHandlers := authHandler.New(s.log, authServices, s.validator, s.middleware, s.googleProvider)

	// Assistant Domain
	assistantServices := assistantService.New(
		s.log,
		s.sessionStore,
		s.geminiClient,
		s.transcriber,
		s.translator,
		s.ttsService,
		s.s3Client,
		schemeRepo,
		s.utils,
	)
	assistantHandlers := assistantHandler.New(s.log, s.validator, s.middleware, assistantServices, s.utils)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, authHandlers, schemeHandlers, assistantHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
