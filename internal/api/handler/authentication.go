package handler

import (
	"net/http"

	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			if authenticating.IsCredentialsError(err) {
				log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			}
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, LoginResponse{Token: token}, "")
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(w, r)
		if !ok {
			return
		}

		user, err := service.GetUserProfile(r.Context(), claims.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		apiErrors.WriteSuccess(w, http.StatusOK, user, "")
	}
}
