package locker

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Guard acumula os locks obtidos ao longo de uma operação e libera todos no fim
type Guard struct {
	locker Locker
	held   []Unlocker
}

func NewGuard(l Locker) *Guard {
	return &Guard{locker: l}
}

func (g *Guard) Lock(ctx context.Context, key string) error {
	unlocker, err := g.locker.Obtain(ctx, key)
	if err != nil {
		return err
	}
	g.held = append(g.held, unlocker)
	return nil
}

// Release libera na ordem inversa; o contexto da requisição pode já estar cancelado
func (g *Guard) Release(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	for i := len(g.held) - 1; i >= 0; i-- {
		if err := g.held[i].Release(ctx); err != nil {
			logrus.WithError(err).Warn("Erro ao liberar lock")
		}
	}
	g.held = nil
}
