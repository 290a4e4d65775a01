package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

type Config struct {
	Port     string
	DB       DB
	JWT      JWT
	CMS      CMS
	PagBank  PagBank
	Redis    Redis
	Kafka    Kafka
	Admin    Admin
	Checkout Checkout
}

type DB struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWT struct {
	Secret     string
	Issuer     string
	Audience   string
	SessionExp time.Duration
}

type CMS struct {
	BaseURL string
	Token   string
}

type PagBank struct {
	BaseURL         string
	Token           string
	RedirectURL     string
	NotificationURL string
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

type Admin struct {
	Token string
	// StatusActors is the allow-list of people permitted to change delivery status.
	StatusActors []string
}

type Checkout struct {
	PriceTolerance    float64
	FreteGratisMinimo float64
	FreteAdicional    int64 // centavos, added on the gateway payload
	Transportadora    string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Host:     getEnv("DB_HOST", log),
			Port:     getEnv("DB_PORT", log),
			User:     getEnv("DB_USER", log),
			Password: getEnv("DB_PASSWORD", log),
			Name:     getEnv("DB_NAME", log),
			SSLMode:  getEnv("DB_SSLMODE", log),
		},
		JWT: JWT{
			Secret:     getEnv("JWT_SECRET", log),
			Issuer:     getEnv("JWT_ISSUER", log),
			Audience:   getEnv("JWT_AUDIENCE", log),
			SessionExp: parseDurationWithDays(getEnvDefault("SESSION_EXP", "30d")),
		},
		CMS: CMS{
			BaseURL: getEnv("CMS_BASE_URL", log),
			Token:   getEnv("CMS_API_TOKEN", log),
		},
		PagBank: PagBank{
			BaseURL:         getEnv("PAGBANK_BASE_URL", log),
			Token:           getEnv("PAGBANK_TOKEN", log),
			RedirectURL:     getEnv("PAGBANK_REDIRECT_URL", log),
			NotificationURL: getEnv("PAGBANK_NOTIFICATION_URL", log),
		},
		Redis: Redis{
			Enabled:  getEnvDefault("REDIS_ENABLED", "false") == "true",
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       atoiDefault(getEnvDefault("REDIS_DB", "0"), 0),
		},
		Kafka: Kafka{
			Enabled: getEnvDefault("KAFKA_ENABLED", "false") == "true",
			Brokers: splitCSV(getEnvDefault("KAFKA_BROKERS", "")),
			Topic:   getEnvDefault("KAFKA_TOPIC", "loja.pedidos"),
		},
		Admin: Admin{
			Token:        getEnv("ADMIN_TOKEN", log),
			StatusActors: splitCSV(getEnv("STATUS_ACTORS", log)),
		},
		Checkout: Checkout{
			PriceTolerance:    atofDefault(getEnvDefault("PRICE_TOLERANCE", "0.01"), 0.01),
			FreteGratisMinimo: atofDefault(getEnvDefault("FRETE_GRATIS_MINIMO", "250"), 250),
			FreteAdicional:    int64(atoiDefault(getEnvDefault("FRETE_ADICIONAL_CENTAVOS", "0"), 0)),
			Transportadora:    getEnvDefault("TRANSPORTADORA", "Correios"),
		},
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return def
}

// parseDurationWithDays accepts stdlib duration strings plus a "d" suffix
// ("30d" -> 720h).
func parseDurationWithDays(s string) time.Duration {
	if strings.HasSuffix(s, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(s, "d"))
		if err != nil {
			return 0
		}
		return time.Duration(days) * 24 * time.Hour
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func atofDefault(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
