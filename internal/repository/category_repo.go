package repository

import (
	"context"

	"gymbeauty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *model.ProductCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]model.ProductCategory, error)
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *model.ProductCategory) error {
	return GetDB(ctx, r.db).Create(c).Error
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.ProductCategory{}).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]model.ProductCategory, error) {
	var list []model.ProductCategory
	err := GetDB(ctx, r.db).Order("name").Find(&list).Error
	return list, err
}
