// Package repository contém as implementações dos repositórios para acesso aos dados
package repository

import "github.com/Masterminds/squirrel"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// scanner é satisfeito por *sql.Row e *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}
