package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesRepresentative é somente leitura na API; target e achieved alimentam o dashboard
type SalesRepresentative struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	EmployeeID string          `json:"employee_id"`
	Territory  []string        `json:"territory"`
	Target     decimal.Decimal `json:"target"`
	Achieved   decimal.Decimal `json:"achieved"`
	CreatedAt  time.Time       `json:"created_at"`
}

// AchievementPercentage retorna achieved/target em porcentagem com duas casas
func (s *SalesRepresentative) AchievementPercentage() decimal.Decimal {
	if s.Target.IsZero() {
		return decimal.Zero
	}

	return s.Achieved.Div(s.Target).Mul(decimal.NewFromInt(100)).Round(2)
}
