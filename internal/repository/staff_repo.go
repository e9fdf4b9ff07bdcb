package repository

import (
	"context"

	"gymbeauty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(ctx context.Context, s *model.Staff) error
	Update(ctx context.Context, s *model.Staff) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error)
	List(ctx context.Context, activeOnly bool) ([]model.Staff, error)
}

type staffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &staffRepository{db: db}
}

func (r *staffRepository) Create(ctx context.Context, s *model.Staff) error {
	return GetDB(ctx, r.db).Create(s).Error
}

func (r *staffRepository) Update(ctx context.Context, s *model.Staff) error {
	return GetDB(ctx, r.db).Save(s).Error
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Staff, error) {
	var s model.Staff
	if err := GetDB(ctx, r.db).First(&s, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *staffRepository) List(ctx context.Context, activeOnly bool) ([]model.Staff, error) {
	var list []model.Staff
	db := GetDB(ctx, r.db)
	if activeOnly {
		db = db.Where("is_active = ?", true)
	}
	err := db.Order("full_name").Find(&list).Error
	return list, err
}

type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	List(ctx context.Context) ([]model.Room, error)
}

type roomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *model.Room) error {
	return GetDB(ctx, r.db).Create(room).Error
}

func (r *roomRepository) List(ctx context.Context) ([]model.Room, error) {
	var list []model.Room
	err := GetDB(ctx, r.db).Order("name").Find(&list).Error
	return list, err
}
