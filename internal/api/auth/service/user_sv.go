package authService

import (
	"context"

	"YojanaSetu/internal/api/auth"
	"YojanaSetu/internal/entity"
	contextPkg "YojanaSetu/pkg/context"

	"github.com/sirupsen/logrus"
)

func (s *authService) GetProfile(ctx context.Context, userID string) (*auth.UserResponse, error) {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	user, err := repo.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := makeUserResponse(user)
	return &resp, nil
}

func (s *authService) UpdateProfile(ctx context.Context, userData entity.UserLoginData, req auth.UpdateUserRequest) (*auth.UserResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return nil, err
	}

	user, err := repo.Users.GetByID(ctx, userData.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.State != "" {
		user.State = req.State
	}

	if err := repo.Users.UpdateUser(ctx, user); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    user.ID,
			"error":      err.Error(),
		}).Error("Failed to update user")
		return nil, err
	}

	resp := makeUserResponse(user)
	return &resp, nil
}

func (s *authService) DeleteUser(ctx context.Context, userID string) error {
	repo, err := s.authRepo.NewClient(false)
	if err != nil {
		return err
	}

	return repo.Users.DeleteUser(ctx, userID)
}

func MakeUserData(user entity.User) map[string]interface{} {
	return map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
	}
}

func makeUserResponse(user entity.User) auth.UserResponse {
	return auth.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		State:     user.State,
		IsGoogle:  user.IsGoogle,
		CreatedAt: user.CreatedAt,
	}
}
