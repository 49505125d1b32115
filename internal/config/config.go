package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App          App          `mapstructure:",squash"`
	Server       Server       `mapstructure:",squash"`
	Database     Database     `mapstructure:",squash"`
	Redis        Redis        `mapstructure:",squash"`
	Lock         Lock         `mapstructure:",squash"`
	Auth         Auth         `mapstructure:",squash"`
	StoreRanking StoreRanking `mapstructure:",squash"`
}

type Server struct {
	Host               string   `mapstructure:"host"`
	Port               string   `mapstructure:"port"`
	CorsAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
	MaxIdleConns int    `mapstructure:"database_max_idle_conns"`
}

type Redis struct {
	Address  string `mapstructure:"redis_address"`
	Password string `mapstructure:"redis_password"`
	DB       int    `mapstructure:"redis_db"`
}

// Lock configura o lock de nomes usado na reconciliação de lojas e clientes
type Lock struct {
	TTL           time.Duration `mapstructure:"lock_ttl"`
	RetryInterval time.Duration `mapstructure:"lock_retry_interval"`
	RetryCount    int           `mapstructure:"lock_retry_count"`
}

type App struct {
	LogLevel           string         `mapstructure:"log_level"`
	Timezone           string         `mapstructure:"timezone"`
	DefaultPhoneRegion string         `mapstructure:"default_phone_region"`
	Location           *time.Location `mapstructure:"-"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"token_ttl"`
}

type StoreRanking struct {
	CronSchedule string `mapstructure:"store_ranking_cron"`
	SyncEnabled  bool   `mapstructure:"store_ranking_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/field_sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)

	// Sem endereço o lock fica em memória (uma única instância)
	viper.SetDefault("REDIS_ADDRESS", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)

	viper.SetDefault("LOCK_TTL", "10s")
	viper.SetDefault("LOCK_RETRY_INTERVAL", "100ms")
	viper.SetDefault("LOCK_RETRY_COUNT", 30)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("TOKEN_TTL", "24h")

	viper.SetDefault("STORE_RANKING_CRON", "0 2 * * *")   // Todos os dias às 2h da manhã
	viper.SetDefault("STORE_RANKING_SYNC_ENABLED", false) // Habilitar snapshot do ranking de lojas

	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("DEFAULT_PHONE_REGION", "ID")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.App.Location, err = time.LoadLocation(config.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone inválido %q: %w", config.App.Timezone, err)
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
