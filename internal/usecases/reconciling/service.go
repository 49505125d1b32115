// Package reconciling resolve lojas e clientes pelo nome, criando-os quando não existem
package reconciling

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ttacon/libphonenumber"
	"github.com/vfg2006/field-sales-api/infrastructure/repository"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/internal/domain"
	"github.com/vfg2006/field-sales-api/internal/usecases"
	"github.com/vfg2006/field-sales-api/pkg/log"
	"github.com/vfg2006/field-sales-api/pkg/utils"
)

const placeholderAddress = "Endereço não verificado (%s)"

type StoreCandidate struct {
	Name      string
	Address   *string
	Phone     *string
	Latitude  *float64
	Longitude *float64
}

type CustomerCandidate struct {
	Name    string
	Email   *string
	Phone   *string
	StoreID string
}

// Resolution informa o id resolvido e se o registro foi criado agora
type Resolution struct {
	ID      string
	Created bool
}

// Reconciler roda no executor do contexto; quem chama decide a transação e os locks
type Reconciler interface {
	ResolveStore(ctx context.Context, candidate StoreCandidate) (Resolution, error)
	ResolveCustomer(ctx context.Context, candidate CustomerCandidate) (Resolution, error)
}

type Service struct {
	stores      repository.StoreRepository
	customers   repository.CustomerRepository
	phoneRegion string
	location    *time.Location
	now         func() time.Time
	newID       func() (string, error)
}

func NewService(
	stores repository.StoreRepository,
	customers repository.CustomerRepository,
	cfg config.App,
) Reconciler {
	location := cfg.Location
	if location == nil {
		location = time.Local
	}

	return &Service{
		stores:      stores,
		customers:   customers,
		phoneRegion: cfg.DefaultPhoneRegion,
		location:    location,
		now:         time.Now,
		newID:       utils.GenerateID,
	}
}

// ResolveStore procura a loja pelo nome sem diferenciar maiúsculas. Uma loja existente nunca é alterada.
func (s *Service) ResolveStore(ctx context.Context, candidate StoreCandidate) (Resolution, error) {
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		return Resolution{}, domain.NewValidationError("nome da loja é obrigatório", map[string]string{"store_name": "required"})
	}

	existing, err := s.stores.FindStoreByName(ctx, name)
	if err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao buscar loja", log.Fields{"store_name": name})
	}
	if existing != nil {
		return Resolution{ID: existing.ID}, nil
	}

	id, err := s.newID()
	if err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao gerar id da loja", nil)
	}

	address := fmt.Sprintf(placeholderAddress, s.now().In(s.location).Format("02/01/2006"))
	if trimmed := trimmedOrNil(candidate.Address); trimmed != nil {
		address = *trimmed
	}

	store := &domain.Store{
		ID:        id,
		Name:      name,
		Address:   address,
		Phone:     s.normalizePhone(candidate.Phone),
		Latitude:  candidate.Latitude,
		Longitude: candidate.Longitude,
	}

	if err := s.stores.CreateStore(ctx, store); err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao criar loja", log.Fields{"store_name": name})
	}

	log.ForContext(ctx).WithFields(log.Fields{"store_id": id, "store_name": name}).Info("Nova loja cadastrada")

	return Resolution{ID: id, Created: true}, nil
}

// ResolveCustomer procura o cliente pelo nome dentro da loja informada
func (s *Service) ResolveCustomer(ctx context.Context, candidate CustomerCandidate) (Resolution, error) {
	name := strings.TrimSpace(candidate.Name)
	if name == "" {
		return Resolution{}, domain.NewValidationError("nome do cliente é obrigatório", map[string]string{"customer_name": "required"})
	}

	existing, err := s.customers.FindCustomerByName(ctx, candidate.StoreID, name)
	if err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao buscar cliente", log.Fields{"store_id": candidate.StoreID})
	}
	if existing != nil {
		return Resolution{ID: existing.ID}, nil
	}

	id, err := s.newID()
	if err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao gerar id do cliente", nil)
	}

	customer := &domain.Customer{
		ID:      id,
		Name:    name,
		Email:   trimmedOrNil(candidate.Email),
		Phone:   s.normalizePhone(candidate.Phone),
		StoreID: candidate.StoreID,
	}

	if err := s.customers.CreateCustomer(ctx, customer); err != nil {
		return Resolution{}, usecases.PersistenceError(ctx, err, "Erro ao criar cliente", log.Fields{"store_id": candidate.StoreID})
	}

	return Resolution{ID: id, Created: true}, nil
}

// normalizePhone formata em E.164 quando o número é reconhecido e mantém o texto original caso contrário
func (s *Service) normalizePhone(phone *string) *string {
	raw := trimmedOrNil(phone)
	if raw == nil {
		return nil
	}

	number, err := libphonenumber.Parse(*raw, s.phoneRegion)
	if err != nil || !libphonenumber.IsPossibleNumber(number) {
		return raw
	}

	formatted := libphonenumber.Format(number, libphonenumber.E164)
	return &formatted
}

func trimmedOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
