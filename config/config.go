package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config armazena todas as configurações do petstock.
type Config struct {
	// Geral
	Port        string
	Environment string
	LogLevel    string

	// Banco de Dados (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis)
	RedisAddr string
	CacheTTL  time.Duration

	// Segurança (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate Limiting global (Redis) e de login (token bucket em memória)
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration
	LoginRatePerSec      float64
	LoginBurst           int

	// HTTP
	CORSAllowedOrigin string
}

// IsDevelopment indica se o ambiente é de desenvolvimento.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig carrega as configurações das variáveis de ambiente (prioritárias) e,
// opcionalmente, de um arquivo .env / config.env no diretório atual.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // arquivo é opcional

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	var errs []string
	intOf := func(key string) int {
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
		if err != nil || n < 0 {
			errs = append(errs, fmt.Sprintf("%s deve ser um inteiro não negativo (valor: %q)", key, v.GetString(key)))
		}
		return n
	}
	floatOf := func(key string) float64 {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.GetString(key)), 64)
		if err != nil || f <= 0 {
			errs = append(errs, fmt.Sprintf("%s deve ser um número positivo (valor: %q)", key, v.GetString(key)))
		}
		return f
	}

	cfg := &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENV"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		DatabaseURL: v.GetString("DATABASE_URL"),
		DBTimeout:   time.Duration(intOf("DB_TIMEOUT_SEC")) * time.Second,

		RedisAddr: v.GetString("REDIS_ADDR"),
		CacheTTL:  time.Duration(intOf("CACHE_TTL_SEC")) * time.Second,

		JWTSecretKey: v.GetString("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(intOf("JWT_EXPIRY_HOURS")) * time.Hour,

		RateLimitMaxRequests: intOf("RATE_LIMIT_MAX_REQUESTS"),
		RateLimitPeriod:      time.Duration(intOf("RATE_LIMIT_PERIOD_MIN")) * time.Minute,
		LoginRatePerSec:      floatOf("LOGIN_RATE_PER_SEC"),
		LoginBurst:           intOf("LOGIN_BURST"),

		CORSAllowedOrigin: v.GetString("CORS_ALLOWED_ORIGIN"),
	}

	// Sem credenciais de DB ou chave de assinatura a aplicação não deve subir.
	if cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL deve ser definida")
	}
	if cfg.JWTSecretKey == "" {
		errs = append(errs, "JWT_SECRET_KEY deve ser definida")
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("erro de configuração: %s", strings.Join(errs, "; "))
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_TIMEOUT_SEC", 5)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("CACHE_TTL_SEC", 300)
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("RATE_LIMIT_MAX_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_PERIOD_MIN", 1)
	v.SetDefault("LOGIN_RATE_PER_SEC", 1)
	v.SetDefault("LOGIN_BURST", 5)
	v.SetDefault("CORS_ALLOWED_ORIGIN", "*")
}
