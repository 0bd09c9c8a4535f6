package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Provider selects the backing store. The enumeration is closed: any
// other value is a fatal configuration error at startup.
type Provider string

const (
	ProviderSQLite Provider = "SQLite"
	ProviderMySQL  Provider = "MySQL"
)

type Config struct {
	Provider   Provider
	DSN        string
	ListenAddr string
}

// Load reads a .env file when present, then resolves configuration
// from the environment. The DSN is looked up under the key named after
// the selected provider, mirroring the provider/connection-string pair
// the application was configured with originally.
func Load() (*Config, error) {
	_ = godotenv.Load()

	provider := Provider(os.Getenv("DB_PROVIDER"))

	var dsn string
	switch provider {
	case ProviderSQLite:
		dsn = os.Getenv("SQLITE_DSN")
		if dsn == "" {
			dsn = "inventory.db"
		}
	case ProviderMySQL:
		dsn = os.Getenv("MYSQL_DSN")
		if dsn == "" {
			return nil, fmt.Errorf("MYSQL_DSN is required when DB_PROVIDER is MySQL")
		}
	default:
		return nil, fmt.Errorf("unsupported database provider: %q", provider)
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return &Config{
		Provider:   provider,
		DSN:        dsn,
		ListenAddr: addr,
	}, nil
}
