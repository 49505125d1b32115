package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
)

type fakeAuthenticator struct{}

func (fakeAuthenticator) LoginUser(_ context.Context, email, password string) (string, error) {
	if email == "admin@company.com" && password == "admin123" {
		return "token-admin", nil
	}
	return "", authenticating.NewAuthError(authenticating.ErrInvalidCredentials, apiErrors.ErrInvalidCredentials, "credenciais inválidas")
}

func (fakeAuthenticator) GetUserProfile(_ context.Context, userID int) (*domain.User, error) {
	return &domain.User{ID: userID, Name: "Admin"}, nil
}

func (fakeAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return admin, nil
}

func TestLoginHandler(t *testing.T) {
	rec, env := serve(Authentication(fakeAuthenticator{}), nil, http.MethodPost, "/v1/login", `{"email":"admin@company.com","password":"admin123"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "token-admin", dataField(env, "token"))

	rec, env = serve(Authentication(fakeAuthenticator{}), nil, http.MethodPost, "/v1/login", `{"email":"admin@company.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "AUTH_001", env.Error.Code)
}

func TestGetMeHandler(t *testing.T) {
	rec, env := serve(Authentication(fakeAuthenticator{}), admin, http.MethodGet, "/v1/me", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Admin", dataField(env, "name"))
}
