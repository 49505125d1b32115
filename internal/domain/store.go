// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "time"

type Store struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     *string   `json:"phone,omitempty"`
	Latitude  *float64  `json:"latitude,omitempty"`
	Longitude *float64  `json:"longitude,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	StoreID   string    `json:"store_id"`
	Store     *Store    `json:"store,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
