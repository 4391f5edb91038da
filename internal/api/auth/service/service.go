package authService

import (
	"context"
	"net/url"

	"YojanaSetu/internal/api/auth"
	authRepository "YojanaSetu/internal/api/auth/repository"
	schemeRepository "YojanaSetu/internal/api/scheme/repository"
	"YojanaSetu/internal/entity"
	"YojanaSetu/pkg/bcrypt"
	"YojanaSetu/pkg/google"
	"YojanaSetu/pkg/utils"

	"github.com/sirupsen/logrus"
)

type IAuthService interface {
	Register(ctx context.Context, req auth.CreateUserRequest) error
	Login(ctx context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error)

	LoginGoogle() (*url.URL, error)
	GoogleLogin(ctx context.Context, userInfo auth.UserGoogle) (auth.LoginUserResponse, error)

	GetProfile(ctx context.Context, userID string) (*auth.UserResponse, error)
	UpdateProfile(ctx context.Context, user entity.UserLoginData, req auth.UpdateUserRequest) (*auth.UserResponse, error)
	DeleteUser(ctx context.Context, userID string) error
}

type authService struct {
	log            *logrus.Logger
	authRepo       authRepository.Repository
	schemeRepo     schemeRepository.Repository
	googleProvider google.ItfGoogle
	bcryptUtils    bcrypt.IBcrypt
	utils          utils.IUtils
}

func New(
	log *logrus.Logger,
	authRepo authRepository.Repository,
	schemeRepo schemeRepository.Repository,
	googleProvider google.ItfGoogle,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) IAuthService {
	return &authService{
		log:            log,
		authRepo:       authRepo,
		schemeRepo:     schemeRepo,
		googleProvider: googleProvider,
		bcryptUtils:    bcryptUtils,
		utils:          utils,
	}
}
