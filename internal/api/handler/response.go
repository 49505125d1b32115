package handler

import (
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases/authenticating"
	"github.com/vfg2006/field-sales-api/pkg/apiErrors"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// writeServiceError traduz os erros dos casos de uso para o envelope da API.
// Erros de persistência já foram logados e saem com a mensagem genérica.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		var details any
		if len(domainErr.Fields) > 0 {
			details = domainErr.Fields
		}
		apiErrors.WriteError(w, domainErr.Code, domainErr.Details, details)
		return
	}

	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro não mapeado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno no servidor", nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.ForContext(r.Context()).WithError(err).Warn("Corpo da requisição inválido")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}
	return true
}

func claimsFrom(w http.ResponseWriter, r *http.Request) (*domain.Claims, bool) {
	claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return nil, false
	}
	return claims, true
}

// actingSalesRep força o vendedor vinculado quando o usuário é vendedor
func actingSalesRep(w http.ResponseWriter, claims *domain.Claims, requested *string) (*string, bool) {
	if !claims.IsSales() {
		return requested, true
	}
	if claims.SalesRepID == nil {
		apiErrors.WriteError(w, apiErrors.ErrInsufficientPrivilege, "Usuário sem vendedor vinculado", nil)
		return nil, false
	}
	return claims.SalesRepID, true
}

func sameSalesRep(actor, owner *string) bool {
	return actor != nil && owner != nil && *actor == *owner
}

func optionalQuery(r *http.Request, key string) *string {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return nil
	}
	return &value
}

func optionalBoolQuery(w http.ResponseWriter, r *http.Request, key string) (*bool, bool) {
	raw := optionalQuery(r, key)
	if raw == nil {
		return nil, true
	}

	value, err := strconv.ParseBool(*raw)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Parâmetro "+key+" deve ser booleano", map[string]string{key: "boolean"})
		return nil, false
	}
	return &value, true
}
