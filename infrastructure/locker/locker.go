// Package locker serializa a busca-ou-criação de lojas e clientes pelo nome
package locker

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotObtained indica que o lock não foi obtido dentro das tentativas configuradas
var ErrNotObtained = errors.New("lock não obtido")

//go:generate mockgen -source=locker.go -destination=mocks/locker_mock.go -package=mocks
type Locker interface {
	Obtain(ctx context.Context, key string) (Unlocker, error)
}

type Unlocker interface {
	Release(ctx context.Context) error
}

// StoreKey monta a chave do lock de uma loja a partir do nome
func StoreKey(name string) string {
	return fmt.Sprintf("store:%s", normalize(name))
}

// CustomerKey monta a chave do lock de um cliente dentro de uma loja.
// storeRef é o id da loja ou, quando a loja ainda será criada, a chave dela.
func CustomerKey(storeRef, name string) string {
	return fmt.Sprintf("customer:%s:%s", storeRef, normalize(name))
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
