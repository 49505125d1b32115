package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	RoleID       int       `json:"role_id"`
	SalesRepID   *string   `json:"sales_rep_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Claims identificam o ator de cada operação; SalesRepID só existe para vendedores
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	SalesRepID *string
	jwt.RegisteredClaims
}

const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleSales      = 3
)

// IsSales indica um vendedor, cujas operações ficam presas ao vendedor vinculado
func (c *Claims) IsSales() bool {
	return c.UserRoleID == RoleSales
}
