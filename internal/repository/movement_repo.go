package repository

import (
	"context"

	"gymbeauty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	Create(ctx context.Context, m *model.InventoryMovement) error
	ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error)
	List(ctx context.Context, page, limit int) ([]model.InventoryMovement, int64, error)
}

type movementRepository struct {
	db *gorm.DB
}

func NewMovementRepository(db *gorm.DB) MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, m *model.InventoryMovement) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *movementRepository) ListByProduct(ctx context.Context, productID uuid.UUID, page, limit int) ([]model.InventoryMovement, int64, error) {
	return r.list(ctx, GetDB(ctx, r.db).Where("product_id = ?", productID), page, limit)
}

func (r *movementRepository) List(ctx context.Context, page, limit int) ([]model.InventoryMovement, int64, error) {
	return r.list(ctx, GetDB(ctx, r.db), page, limit)
}

func (r *movementRepository) list(_ context.Context, db *gorm.DB, page, limit int) ([]model.InventoryMovement, int64, error) {
	var list []model.InventoryMovement
	var total int64

	if err := db.Model(&model.InventoryMovement{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := db.Preload("Product").Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
