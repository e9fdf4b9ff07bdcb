package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BeautyHealthRepository interface {
	Upsert(ctx context.Context, info *model.BeautyHealthInfo) error
	FindByMember(ctx context.Context, memberID uint) (*model.BeautyHealthInfo, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type beautyHealthRepository struct {
	db *gorm.DB
}

func NewBeautyHealthRepository(db *gorm.DB) BeautyHealthRepository {
	return &beautyHealthRepository{db: db}
}

func (r *beautyHealthRepository) Upsert(ctx context.Context, info *model.BeautyHealthInfo) error {
	return GetDB(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "member_id"}},
		UpdateAll: true,
	}).Create(info).Error
}

func (r *beautyHealthRepository) FindByMember(ctx context.Context, memberID uint) (*model.BeautyHealthInfo, error) {
	var info model.BeautyHealthInfo
	if err := GetDB(ctx, r.db).Where("member_id = ?", memberID).First(&info).Error; err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *beautyHealthRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.BeautyHealthInfo{}).Error
}
