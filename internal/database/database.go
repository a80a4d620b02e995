package database

import (
	"github.com/readcoach/api/internal/config"
	"github.com/readcoach/api/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.LearningSession{},
		&model.VocabularyItem{},
	)
	if err != nil {
		return err
	}

	// Local accounts are unique by username and email; OAuth accounts by
	// (provider, provider_id). The partial indexes keep the two schemes from
	// colliding.
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users(username) WHERE provider = 'local'")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email) WHERE provider = 'local'")
	db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_users_provider_provider_id ON users(provider, provider_id) WHERE provider <> 'local'")

	return nil
}
