package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/gestor-pm/gestor-api/internal/dto"
	"github.com/gestor-pm/gestor-api/internal/models"
)

type fakeUserRepo struct {
	users []models.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = uint(len(f.users) + 1)
	f.users = append(f.users, *user)
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uint) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, gorm.ErrRecordNotFound
}

func (f *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	return f.users, nil
}

func TestAuthServiceLoginIssuesToken(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{
		{ID: 9, Username: "maria", Password: "s3cret", Name: "Maria", Role: models.RoleManager},
	}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(repo, "test-secret", time.Hour, validate, zerolog.Nop())

	response, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "s3cret"})
	require.NoError(t, err)
	require.Equal(t, "maria", response.User.Username)

	token, err := jwt.Parse(response.Token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, float64(9), claims["sub"])
	require.Equal(t, models.RoleManager, claims["role"])
}

func TestAuthServiceLoginRejectsBadCredentials(t *testing.T) {
	repo := &fakeUserRepo{users: []models.User{
		{ID: 1, Username: "maria", Password: "s3cret"},
	}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewAuthService(repo, "test-secret", time.Hour, validate, zerolog.Nop())

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "s3cret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
