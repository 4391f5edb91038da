package auth

import "YojanaSetu/pkg/response"

var (
	ErrEmailAlreadyExists     = response.NewError(409, "email already exists")
	ErrInvalidEmailOrPassword = response.NewError(400, "email or password is wrong")
	ErrUserNotFound           = response.NewError(404, "user not found")
	ErrUserWithEmailNotFound  = response.NewError(404, "user with email not found")
)
