package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string        `validate:"required"`
	Env             string        `validate:"required"`
	LogLevel        string        `validate:"oneof=trace debug info warn error"`
	ShutdownTimeout time.Duration `validate:"gt=0"`

	StoreBackend string `validate:"oneof=firestore mysql memory"`

	FirestoreProjectID   string
	FirestoreDatabase    string
	FirestoreCredentials string

	DBHost     string `validate:"required_if=StoreBackend mysql"`
	DBPort     string `validate:"required_if=StoreBackend mysql"`
	DBName     string `validate:"required_if=StoreBackend mysql"`
	DBUser     string `validate:"required_if=StoreBackend mysql"`
	DBPassword string
	DBTimeout  string
	DBAttempts int `validate:"gte=0"`

	AuthEnabled   bool
	JWTSecret     string `validate:"required_if=AuthEnabled true"`
	JWTTTL        time.Duration
	AdminUsername string `validate:"required_if=AuthEnabled true"`
	AdminPassword string `validate:"required_if=AuthEnabled true"`
}

// Load reads a .env file when one is present, then the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Addr:            getenv("ADDR", ":3000"),
		Env:             getenv("APP_ENV", "development"),
		LogLevel:        strings.ToLower(getenv("LOG_LEVEL", "info")),
		ShutdownTimeout: duration(getenv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),

		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", "firestore")),

		FirestoreProjectID:   os.Getenv("FIRESTORE_PROJECT_ID"),
		FirestoreDatabase:    getenv("FIRESTORE_DATABASE", "(default)"),
		FirestoreCredentials: getenv("GOOGLE_APPLICATION_CREDENTIALS", "config/serviceAccount.json"),

		DBHost:     getenv("DB_HOST", "db"),
		DBPort:     getenv("DB_PORT", "3306"),
		DBName:     getenv("DB_NAME", "reservas"),
		DBUser:     getenv("DB_USER", "appuser"),
		DBPassword: getenv("DB_PASSWORD", "apppass"),
		DBTimeout:  getenv("DB_TIMEOUT", "5s"),
		DBAttempts: atoi(getenv("DB_CONNECT_ATTEMPTS", "30"), 30),

		AuthEnabled:   boolean(os.Getenv("AUTH_ENABLED")),
		JWTSecret:     getenv("JWT_SECRET", "change-me-in-prod"),
		JWTTTL:        duration(getenv("JWT_TTL", "60m"), time.Hour),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPassword
	cfg.Net = "tcp"
	cfg.Addr = c.DBHost + ":" + c.DBPort
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	cfg.Params["charset"] = "utf8mb4"
	cfg.Timeout = duration(c.DBTimeout, 5*time.Second)
	return cfg.FormatDSN()
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func duration(s string, def time.Duration) time.Duration {
	v, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return v
}

func boolean(s string) bool {
	v, _ := strconv.ParseBool(strings.TrimSpace(s))
	return v
}
