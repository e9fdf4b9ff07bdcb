package repository

import (
	"context"
	"time"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
)

type BeautyServiceRepository interface {
	Create(ctx context.Context, svc *model.BeautyService) error
	Update(ctx context.Context, svc *model.BeautyService) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.BeautyService, error)
	List(ctx context.Context, page, limit int, serviceType string) ([]model.BeautyServiceWithMember, int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.BeautyService, error)
	CountByMember(ctx context.Context, memberID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
	CountSince(ctx context.Context, t time.Time) (int64, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type beautyServiceRepository struct {
	db *gorm.DB
}

func NewBeautyServiceRepository(db *gorm.DB) BeautyServiceRepository {
	return &beautyServiceRepository{db: db}
}

func (r *beautyServiceRepository) Create(ctx context.Context, svc *model.BeautyService) error {
	return GetDB(ctx, r.db).Create(svc).Error
}

func (r *beautyServiceRepository) Update(ctx context.Context, svc *model.BeautyService) error {
	return GetDB(ctx, r.db).Save(svc).Error
}

func (r *beautyServiceRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.BeautyService{}).Error
}

func (r *beautyServiceRepository) FindByID(ctx context.Context, id uint) (*model.BeautyService, error) {
	var svc model.BeautyService
	if err := GetDB(ctx, r.db).First(&svc, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *beautyServiceRepository) List(ctx context.Context, page, limit int, serviceType string) ([]model.BeautyServiceWithMember, int64, error) {
	var rows []model.BeautyServiceWithMember
	var total int64

	base := GetDB(ctx, r.db).Model(&model.BeautyService{})
	if serviceType != "" {
		base = base.Where("service_type = ?", serviceType)
	}
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := GetDB(ctx, r.db).Table("beauty_services").
		Select("beauty_services.*, members.full_name, members.phone").
		Joins("JOIN members ON members.id = beauty_services.member_id")
	if serviceType != "" {
		db = db.Where("beauty_services.service_type = ?", serviceType)
	}

	offset := (page - 1) * limit
	err := db.Order("beauty_services.service_date desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *beautyServiceRepository) ListByMember(ctx context.Context, memberID uint) ([]model.BeautyService, error) {
	var list []model.BeautyService
	err := GetDB(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("service_date desc").
		Find(&list).Error
	return list, err
}

func (r *beautyServiceRepository) CountByMember(ctx context.Context, memberID uint) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BeautyService{}).
		Where("member_id = ?", memberID).Count(&total).Error
	return total, err
}

func (r *beautyServiceRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BeautyService{}).Count(&total).Error
	return total, err
}

func (r *beautyServiceRepository) CountSince(ctx context.Context, t time.Time) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.BeautyService{}).
		Where("service_date >= ?", t).Count(&total).Error
	return total, err
}

func (r *beautyServiceRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.BeautyService{}).Error
}
