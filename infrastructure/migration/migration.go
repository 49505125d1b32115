// Package migration cria o schema e popula os dados iniciais
package migration

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:embed schema.sql
var schema string

type seedSalesRep struct {
	Name       string
	Email      string
	Phone      string
	EmployeeID string
	Territory  []string
	Target     decimal.Decimal
	Achieved   decimal.Decimal
}

type seedStore struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Latitude  float64
	Longitude float64
}

var salesReps = []seedSalesRep{
	{
		Name:       "Ahmad Rizki",
		Email:      "ahmad.rizki@company.com",
		Phone:      "+62812345678",
		EmployeeID: "EMP001",
		Territory:  []string{"Jakarta Utara", "Jakarta Pusat"},
		Target:     decimal.NewFromInt(50000000),
		Achieved:   decimal.NewFromInt(35000000),
	},
	{
		Name:       "Sari Dewi",
		Email:      "sari.dewi@company.com",
		Phone:      "+62812345679",
		EmployeeID: "EMP002",
		Territory:  []string{"Jakarta Selatan", "Jakarta Timur"},
		Target:     decimal.NewFromInt(45000000),
		Achieved:   decimal.NewFromInt(32000000),
	},
}

var stores = []seedStore{
	{"store-1", "Toko Maju Jaya", "Jl. Raya Kemayoran No. 45, Jakarta Pusat", "+62215551234", -6.1744, 106.8294},
	{"store-2", "Warung Berkah", "Jl. Mangga Besar No. 23, Jakarta Barat", "+62215551235", -6.1516, 106.8217},
	{"store-3", "Mini Market Sejahtera", "Jl. Sudirman No. 89, Jakarta Selatan", "+62215551236", -6.2088, 106.8456},
	{"store-4", "Toko Serba Ada", "Jl. Gatot Subroto No. 12, Jakarta Timur", "+62215551237", -6.2297, 106.8397},
	{"store-5", "Warung Pak Haji", "Jl. Kebon Jeruk No. 67, Jakarta Barat", "+62215551238", -6.1951, 106.7845},
}

// Apply executa o schema; todas as instruções são idempotentes
func Apply(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("erro ao aplicar schema: %w", err)
	}
	return nil
}

// AdminUser é o usuário administrador criado pelo seed
type AdminUser struct {
	Name     string
	Email    string
	Password string
}

// Seed insere vendedores, lojas e o administrador sem sobrescrever registros existentes
func Seed(ctx context.Context, db *sql.DB, admin AdminUser, newID func() (string, error)) error {
	startTime := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, rep := range salesReps {
		id, err := newID()
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO sales_representatives (id, name, email, phone, employee_id, territory, target, achieved)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (employee_id) DO NOTHING`,
			id, rep.Name, rep.Email, rep.Phone, rep.EmployeeID, pq.Array(rep.Territory), rep.Target, rep.Achieved,
		)
		if err != nil {
			return fmt.Errorf("erro ao inserir vendedor %s: %w", rep.EmployeeID, err)
		}
	}
	logrus.Infof("%d vendedores processados", len(salesReps))

	for _, s := range stores {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO stores (id, name, address, phone, latitude, longitude)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			s.ID, s.Name, s.Address, s.Phone, s.Latitude, s.Longitude,
		)
		if err != nil {
			return fmt.Errorf("erro ao inserir loja %s: %w", s.ID, err)
		}
	}
	logrus.Infof("%d lojas processadas", len(stores))

	hash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("erro ao gerar hash da senha: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO users (name, email, password_hash, active, role_id)
		VALUES ($1, $2, $3, TRUE, 1)
		ON CONFLICT (email) DO NOTHING`,
		admin.Name, admin.Email, string(hash),
	)
	if err != nil {
		return fmt.Errorf("erro ao inserir administrador: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logrus.Infof("Seed concluído em %v", time.Since(startTime))
	return nil
}
