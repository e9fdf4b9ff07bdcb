package repository

import (
	"context"
	"time"

	"gymbeauty/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(ctx context.Context, a *model.Appointment) error
	Update(ctx context.Context, a *model.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, from, to time.Time, staffID *uuid.UUID, status string) ([]model.Appointment, error)
	FindOverlapping(ctx context.Context, staffID uuid.UUID, roomID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]model.Appointment, error)
}

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, a *model.Appointment) error {
	return GetDB(ctx, r.db).Create(a).Error
}

func (r *appointmentRepository) Update(ctx context.Context, a *model.Appointment) error {
	return GetDB(ctx, r.db).Save(a).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	var a model.Appointment
	err := GetDB(ctx, r.db).
		Preload("Staff").Preload("Room").
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context, from, to time.Time, staffID *uuid.UUID, status string) ([]model.Appointment, error) {
	var list []model.Appointment
	db := GetDB(ctx, r.db).
		Preload("Staff").Preload("Room").
		Where("start_time < ? AND end_time > ?", to, from)
	if staffID != nil {
		db = db.Where("staff_id = ?", *staffID)
	}
	if status != "" {
		db = db.Where("status = ?", status)
	}
	err := db.Order("start_time").Find(&list).Error
	return list, err
}

// FindOverlapping returns live bookings that intersect [start, end) for the
// same staff member or, when roomID is set, the same room. Cancelled and
// no-show rows never block a slot.
func (r *appointmentRepository) FindOverlapping(ctx context.Context, staffID uuid.UUID, roomID *uuid.UUID, start, end time.Time, excludeID *uuid.UUID) ([]model.Appointment, error) {
	var list []model.Appointment
	db := GetDB(ctx, r.db).
		Where("status NOT IN ?", []string{model.AppointmentCancelled, model.AppointmentNoShow}).
		Where("start_time < ? AND end_time > ?", end, start)
	if roomID != nil {
		db = db.Where("staff_id = ? OR room_id = ?", staffID, *roomID)
	} else {
		db = db.Where("staff_id = ?", staffID)
	}
	if excludeID != nil {
		db = db.Where("id <> ?", *excludeID)
	}
	err := db.Find(&list).Error
	return list, err
}
