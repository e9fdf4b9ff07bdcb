package repository

import (
	"context"
	"time"

	"gymbeauty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error)
	List(ctx context.Context, page, limit int, from, to *time.Time) ([]model.Sale, int64, error)
	FindItem(ctx context.Context, id uuid.UUID) (*model.SaleItem, error)
	CreateRefund(ctx context.Context, refund *model.Refund) error
	ListRefundsBySale(ctx context.Context, saleID uuid.UUID) ([]model.Refund, error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Sale, error) {
	var sale model.Sale
	err := GetDB(ctx, r.db).
		Preload("Items").Preload("Items.Product").
		First(&sale, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

func (r *saleRepository) List(ctx context.Context, page, limit int, from, to *time.Time) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Sale{})
	if from != nil {
		db = db.Where("created_at >= ?", *from)
	}
	if to != nil {
		db = db.Where("created_at < ?", *to)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Preload("Items").Order("created_at desc").Offset(offset).Limit(limit).Find(&sales).Error
	if err != nil {
		return nil, 0, err
	}
	return sales, total, nil
}

func (r *saleRepository) FindItem(ctx context.Context, id uuid.UUID) (*model.SaleItem, error) {
	var item model.SaleItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *saleRepository) CreateRefund(ctx context.Context, refund *model.Refund) error {
	return GetDB(ctx, r.db).Create(refund).Error
}

func (r *saleRepository) ListRefundsBySale(ctx context.Context, saleID uuid.UUID) ([]model.Refund, error) {
	var refunds []model.Refund
	err := GetDB(ctx, r.db).
		Preload("Items").
		Where("sale_id = ?", saleID).
		Order("created_at desc").
		Find(&refunds).Error
	return refunds, err
}
