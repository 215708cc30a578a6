package app

import (
	"gorm.io/gorm"

	profilerepo "github.com/yungbote/profile-backend/internal/data/repos/profile"
	"github.com/yungbote/profile-backend/internal/platform/logger"
)

type Repos struct {
	Profile profilerepo.ProfileRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Profile: profilerepo.NewProfileRepo(db, log),
	}
}
