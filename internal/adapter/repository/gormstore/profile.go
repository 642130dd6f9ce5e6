package gormstore

import (
	"context"
	"errors"

	"sba-portal/internal/domain/auth"
	profileDomain "sba-portal/internal/domain/profile"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (*profileDomain.Profile, error) {
	var out profileDomain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, profileDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ProfileRepository) Upsert(ctx context.Context, p *profileDomain.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "first_name", "last_name", "phone", "company", "role", "updated_at",
		}),
	}).Create(p).Error
}

func (r *ProfileRepository) ListByRole(ctx context.Context, role auth.Role) ([]profileDomain.Profile, error) {
	var out []profileDomain.Profile
	err := r.db.WithContext(ctx).
		Where("role = ?", role).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
