package database

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ormsample/inventory/config"
)

// Open connects to the store selected by the configuration. SQLite
// does not enforce foreign keys unless asked, so enforcement is turned
// on right after connecting; without it the restrict-on-delete rule
// between products and categories would silently not apply.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Provider {
	case config.ProviderSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case config.ProviderMySQL:
		dialector = mysql.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database provider: %q", cfg.Provider)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s store: %w", cfg.Provider, err)
	}

	if cfg.Provider == config.ProviderSQLite {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Reset destroys the whole schema, migration bookkeeping included, and
// replays the migration sequence from scratch. Every entity loaded
// before the call is stale afterwards; callers must invalidate their
// caches and reload.
func Reset(db *gorm.DB) error {
	// Products first: the foreign key restricts dropping categories
	// while the referencing table still exists on some providers.
	for _, table := range []string{"products", "categories", "migrations"} {
		if db.Migrator().HasTable(table) {
			if err := db.Migrator().DropTable(table); err != nil {
				return fmt.Errorf("failed to drop %s: %w", table, err)
			}
		}
	}
	return Migrate(db)
}
