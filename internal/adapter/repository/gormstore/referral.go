package gormstore

import (
	"context"
	"errors"

	referralDomain "sba-portal/internal/domain/referral"

	"gorm.io/gorm"
)

type ReferralRepository struct{ db *gorm.DB }

func NewReferralRepository(db *gorm.DB) *ReferralRepository { return &ReferralRepository{db: db} }

func (r *ReferralRepository) Create(ctx context.Context, l *referralDomain.Lead) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *ReferralRepository) Save(ctx context.Context, l *referralDomain.Lead) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *ReferralRepository) GetByLeadID(ctx context.Context, leadID string) (*referralDomain.Lead, error) {
	var out referralDomain.Lead
	err := r.db.WithContext(ctx).Where("lead_id = ?", leadID).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, referralDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *ReferralRepository) ListByReferrer(ctx context.Context, referralUserID string) ([]referralDomain.Lead, error) {
	var out []referralDomain.Lead
	err := r.db.WithContext(ctx).
		Where("referral_user_id = ?", referralUserID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ReferralRepository) ListAll(ctx context.Context) ([]referralDomain.Lead, error) {
	var out []referralDomain.Lead
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}
