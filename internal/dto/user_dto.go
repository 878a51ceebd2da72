package dto

import "github.com/gestor-pm/gestor-api/internal/models"

// LoginRequest carries credentials for the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the signed token and the authenticated user.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserCreateRequest is the payload for registering a user (admin only).
type UserCreateRequest struct {
	Username string  `json:"username" validate:"required"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	Role     string  `json:"role" validate:"required,oneof=admin manager user"`
	Avatar   *string `json:"avatar"`
}

// UserResponse mirrors a stored user without the password.
type UserResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	Avatar   *string `json:"avatar"`
}

// NewUserResponse maps a user model to its response shape.
func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		Avatar:   user.Avatar,
	}
}

// NewUserResponseSlice maps a slice of user models.
func NewUserResponseSlice(users []models.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, NewUserResponse(user))
	}
	return responses
}
