package db

import (
	"gorm.io/gorm"

	"github.com/yungbote/profile-backend/internal/domain/profile"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&profile.Record{},
	)
}
