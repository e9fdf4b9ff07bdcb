package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GymInfoRepository interface {
	Upsert(ctx context.Context, info *model.GymInfo) error
	FindByMember(ctx context.Context, memberID uint) (*model.GymInfo, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type gymInfoRepository struct {
	db *gorm.DB
}

func NewGymInfoRepository(db *gorm.DB) GymInfoRepository {
	return &gymInfoRepository{db: db}
}

// Upsert writes the per-member gym profile, replacing an existing row for the
// same member. The member_id unique index drives the conflict resolution.
func (r *gymInfoRepository) Upsert(ctx context.Context, info *model.GymInfo) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		UpdateAll: true,
	}).Create(info).Error
}

func (r *gymInfoRepository) FindByMember(ctx context.Context, memberID uint) (*model.GymInfo, error) {
	var info model.GymInfo
	if err := GetDB(ctx, r.db).Where("member_id = ?", memberID).First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *gymInfoRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.GymInfo{}).Error
}
