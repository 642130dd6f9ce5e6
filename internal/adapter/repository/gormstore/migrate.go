package gormstore

import (
	"sba-portal/internal/domain/application"
	"sba-portal/internal/domain/document"
	"sba-portal/internal/domain/meeting"
	"sba-portal/internal/domain/profile"
	"sba-portal/internal/domain/referral"

	"gorm.io/gorm"
)

// Models is every table the portal owns, in creation order.
func Models() []any {
	return []any{
		&application.Application{},
		&application.StatusHistory{},
		&document.Document{},
		&meeting.Meeting{},
		&referral.Lead{},
		&profile.Profile{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
