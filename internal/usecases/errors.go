// Package usecases reúne o tratamento de erro comum aos casos de uso
package usecases

import (
	"context"
	"errors"

	"github.com/vfg2006/field-sales-api/infrastructure/locker"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

// PersistenceError loga o erro do driver e devolve o erro genérico de persistência.
// Erros de domínio já tratados são devolvidos sem alteração.
func PersistenceError(ctx context.Context, err error, details string, fields log.Fields) error {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return err
	}

	log.ForContext(ctx).WithFields(fields).WithError(err).Error(details)
	return domain.NewPersistenceError(details)
}

// LockError converte a falha ao obter o lock de nome no erro de domínio
func LockError(ctx context.Context, err error, key string) error {
	if errors.Is(err, locker.ErrNotObtained) {
		log.ForContext(ctx).WithField("lock_key", key).Warn("Lock de reconciliação não obtido")
		return domain.NewLockUnavailableError(key)
	}
	return PersistenceError(ctx, err, "Erro ao obter lock de reconciliação", log.Fields{"lock_key": key})
}
