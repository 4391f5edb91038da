package authService

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"YojanaSetu/internal/api/auth"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"
	jwtPkg "YojanaSetu/pkg/jwt"

	"github.com/sirupsen/logrus"
)

// Register creates the account and seeds an empty preference profile so the
// filter store always has a row to persist into.
func (s *authService) Register(ctx context.Context, req auth.CreateUserRequest) error {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	_, err = repo.Users.GetByEmail(ctx, req.Email)
	if err == nil {
		return auth.ErrEmailAlreadyExists
	} else if !errors.Is(err, auth.ErrUserWithEmailNotFound) {
		return err
	}

	hashed, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	now := time.Now()
	user := entity.User{
		ID:        id,
		Email:     req.Email,
		Name:      req.Name,
		Password:  hashed,
		State:     req.State,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := repo.Users.CreateUser(ctx, user); err != nil {
		return err
	}

	if err := s.seedPreferenceProfile(ctx, user); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Warn("Failed to seed preference profile")
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Info("User registered")

	return nil
}

func (s *authService) Login(ctx context.Context, req auth.LoginUserRequest) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrUserWithEmailNotFound) {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("Login attempt for unknown email")
			return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
		}
		return auth.LoginUserResponse{}, err
	}

	if err := s.bcryptUtils.ComparePassword(user.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Password comparison failed")
		return auth.LoginUserResponse{}, auth.ErrInvalidEmailOrPassword
	}

	return s.issueToken(requestID, user)
}

func (s *authService) LoginGoogle() (*url.URL, error) {
	gConfig := s.googleProvider.GetConfig()
	URL, err := url.Parse(gConfig.Endpoint.AuthURL)
	if err != nil {
		return nil, err
	}

	parameters := url.Values{}
	parameters.Add("client_id", os.Getenv("GOOGLE_CLIENT_ID"))
	parameters.Add("scope", strings.Join(gConfig.Scopes, " "))
	parameters.Add("redirect_uri", gConfig.RedirectURL)
	parameters.Add("response_type", "code")
	parameters.Add("state", os.Getenv("GOOGLE_STATE"))
	URL.RawQuery = parameters.Encode()

	return URL, nil
}

// GoogleLogin signs in an OAuth user, creating the account on first
// contact. No password is involved; the Google exchange already proved
// ownership of the email.
func (s *authService) GoogleLogin(ctx context.Context, userInfo auth.UserGoogle) (auth.LoginUserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return auth.LoginUserResponse{}, err
	}

	user, err := repo.Users.GetByEmail(ctx, userInfo.Email)
	if errors.Is(err, auth.ErrUserWithEmailNotFound) {
		id, idErr := s.utils.NewULIDFromTimestamp(time.Now())
		if idErr != nil {
			return auth.LoginUserResponse{}, idErr
		}

		now := time.Now()
		user = entity.User{
			ID:        id,
			Email:     userInfo.Email,
			Name:      userInfo.Email,
			IsGoogle:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := repo.Users.CreateUser(ctx, user); err != nil {
			return auth.LoginUserResponse{}, err
		}
		if err := s.seedPreferenceProfile(ctx, user); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"user_id":    user.ID,
				"error":      err.Error(),
			}).Warn("Failed to seed preference profile")
		}
	} else if err != nil {
		return auth.LoginUserResponse{}, err
	}

	return s.issueToken(requestID, user)
}

func (s *authService) issueToken(requestID string, user entity.User) (auth.LoginUserResponse, error) {
	token, expired, err := jwtPkg.Sign(MakeUserData(user), time.Hour*24)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign token")
		return auth.LoginUserResponse{}, err
	}

	return auth.LoginUserResponse{
		AccessToken:      token,
		ExpiresInMinutes: time.Until(time.Unix(expired, 0)).Minutes(),
	}, nil
}

func (s *authService) seedPreferenceProfile(ctx context.Context, user entity.User) error {
	schemeRepo, err := s.schemeRepo.NewClient(false)
	if err != nil {
		return err
	}

	return schemeRepo.Preferences.UpsertPreferenceProfile(ctx, entity.PreferenceProfile{
		UserID:    user.ID,
		Location:  user.State,
		UpdatedAt: time.Now(),
	})
}
