package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.GymPayment) error
	ListByMember(ctx context.Context, memberID uint) ([]model.GymPayment, error)
	List(ctx context.Context, page, limit int) ([]model.GymPayment, int64, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, p *model.GymPayment) error {
	return GetDB(ctx, r.db).Create(p).Error
}

func (r *paymentRepository) ListByMember(ctx context.Context, memberID uint) ([]model.GymPayment, error) {
	var list []model.GymPayment
	err := GetDB(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("payment_date desc").
		Find(&list).Error
	return list, err
}

func (r *paymentRepository) List(ctx context.Context, page, limit int) ([]model.GymPayment, int64, error) {
	var list []model.GymPayment
	var total int64

	db := GetDB(ctx, r.db).Model(&model.GymPayment{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("payment_date desc").Offset(offset).Limit(limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *paymentRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.GymPayment{}).Error
}
