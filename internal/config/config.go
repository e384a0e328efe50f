package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config agrupa toda a configuração da aplicação
type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Locale   LocaleConfig
}

// ServerConfig contém as configurações do servidor HTTP
type ServerConfig struct {
	AppEnv         string
	Port           string
	BasePath       string
	AllowedOrigins []string
}

// LoggerConfig contém as configurações de log
type LoggerConfig struct {
	Level       string
	Encoding    string
	Development bool
}

// Drivers de armazenamento suportados
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// StorageConfig define qual backend chave/valor é usado
type StorageConfig struct {
	Driver        string
	FilePath      string
	Channel       string
	MaxValueBytes int
}

// PostgresConfig contém as configurações para conexão com o PostgreSQL
type PostgresConfig struct {
	URL            string
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	MigrationsPath string
}

// RedisConfig contém as configurações do Redis
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

// AuthConfig contém a credencial única do sistema e os dados do JWT
type AuthConfig struct {
	Username     string
	Password     string
	PasswordHash string
	JWTSecret    string
	JWTExpiry    time.Duration
}

// LocaleConfig define o fuso usado nas janelas de "hoje" e "mês atual"
type LocaleConfig struct {
	Timezone string
}

// LoadEnv carrega a configuração a partir das variáveis de ambiente
func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:         getEnv("APP_ENV", "development"),
			Port:           getEnv("SERVER_PORT", "8080"),
			BasePath:       getEnv("API_BASE_PATH", "/api/v1"),
			AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:       getEnv("LOGGER_LEVEL", "info"),
			Encoding:    getEnv("LOGGER_ENCODING", "json"),
			Development: getEnvBool("LOGGER_DEVELOPMENT", false),
		},
		Storage: StorageConfig{
			Driver:        getEnv("STORAGE_DRIVER", DriverFile),
			FilePath:      getEnv("STORAGE_FILE", "data/store.json"),
			Channel:       getEnv("STORAGE_CHANNEL", "erp-revenda:changes"),
			MaxValueBytes: getEnvInt("STORAGE_MAX_VALUE_BYTES", 5*1024*1024),
		},
		Postgres: PostgresConfig{
			URL:            getEnv("DATABASE_URL", ""),
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnv("DB_PORT", "5432"),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", "postgres"),
			DBName:         getEnv("DB_NAME", "erp_revenda"),
			SSLMode:        getEnv("DB_SSL_MODE", "disable"),
			MaxConns:       getEnvInt("DB_MAX_CONNECTIONS", 10),
			MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_PREFIX", "erp-revenda"),
		},
		Auth: AuthConfig{
			Username:     getEnv("AUTH_USERNAME", "admin"),
			Password:     getEnv("AUTH_PASSWORD", ""),
			PasswordHash: getEnv("AUTH_PASSWORD_HASH", ""),
			JWTSecret:    getEnv("JWT_SECRET_KEY", ""),
			JWTExpiry:    time.Duration(getEnvInt("JWT_EXPIRATION_HOURS", 24)) * time.Hour,
		},
		Locale: LocaleConfig{
			Timezone: getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
		},
	}
}

// IsDevelopment indica se a aplicação roda em modo de desenvolvimento
func (c *Config) IsDevelopment() bool {
	return c.Server.AppEnv == "development" || c.Server.AppEnv == "local"
}

// ConnectionString retorna a URL de conexão com o PostgreSQL
func (c PostgresConfig) ConnectionString() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

// Location resolve o fuso configurado, caindo para o local em caso de erro
func (c LocaleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	}
	return fallback
}
