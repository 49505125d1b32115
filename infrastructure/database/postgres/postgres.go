package postgres

import (
	"context"
	"database/sql"

	_ "github.com/lib/pq"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/pkg/log"
)

// Transactor é o que os casos de uso precisam para agrupar operações numa transação
type Transactor interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Conn interface {
	Executor(ctx context.Context) Executor
	Close() error
	Ping(context.Context) error
	RunInTransaction(context.Context, func(ctx context.Context) error) error
}

type Connection struct {
	*sql.DB
}

type txKey struct{}

func NewConnection(
	ctx context.Context,
	cfg config.Database,
) (*Connection, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	return &Connection{DB: db}, nil
}

// NewWithDB envolve um *sql.DB já aberto (usado pelos testes com sqlmock)
func NewWithDB(db *sql.DB) *Connection {
	return &Connection{DB: db}
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}

// Executor retorna a transação em andamento no contexto ou o pool de conexões
func (c *Connection) Executor(ctx context.Context) Executor {
	if tx, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return tx
	}
	return c.DB
}

// RunInTransaction executa fn dentro de uma transação propagada pelo contexto.
// Chamadas aninhadas reutilizam a transação externa.
func (c *Connection) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*sql.Tx); ok {
		return fn(ctx)
	}

	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if err := recover(); err != nil {
			_ = tx.Rollback()
			panic(err)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.ForContext(ctx).WithError(rbErr).Error("Erro ao desfazer transação")
		}
		return err
	}

	return tx.Commit()
}
