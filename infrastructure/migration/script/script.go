package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/field-sales-api/infrastructure/migration"
	"github.com/vfg2006/field-sales-api/internal/config"
	"github.com/vfg2006/field-sales-api/pkg/utils"
)

func setupLogger() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("Iniciando script de migração...")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	setupLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("ERRO ao carregar configuração: %v", err)
	}

	log.Println("Conectando ao banco de dados...")
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}

	if err := migration.Apply(ctx, db); err != nil {
		log.Fatalf("ERRO: %v", err)
	}
	log.Println("Schema aplicado")

	admin := migration.AdminUser{
		Name:     getEnv("SEED_ADMIN_NAME", "Administrador"),
		Email:    getEnv("SEED_ADMIN_EMAIL", "admin@company.com"),
		Password: getEnv("SEED_ADMIN_PASSWORD", "admin123"),
	}

	if err := migration.Seed(ctx, db, admin, utils.GenerateID); err != nil {
		log.Fatalf("ERRO ao popular dados iniciais: %v", err)
	}

	log.Println("Migração concluída com sucesso")
}
