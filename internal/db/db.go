package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/artmarkt/marketplace-api/internal/config"
)

func OpenPostgres(conf *config.PostgresConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v",
		conf.Host, conf.User, conf.Password, conf.DB, conf.Port,
	)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return gormDB, nil
}

// OpenPostgresWithURL connects with a full DATABASE_URL, used on hosts that
// inject the connection string as a single env var.
func OpenPostgresWithURL(url string) (*gorm.DB, error) {
	gormDB, err := gorm.Open(postgres.Open(url), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gorm.Open -> %w", err)
	}

	return gormDB, nil
}
