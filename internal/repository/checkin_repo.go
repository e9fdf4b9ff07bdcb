package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
)

type CheckInRepository interface {
	Create(ctx context.Context, checkin *model.CheckIn) error
	ListByMember(ctx context.Context, memberID uint, limit int) ([]model.CheckIn, error)
	ListRecent(ctx context.Context, page, limit int) ([]model.CheckInWithMember, int64, error)
	ListByDayRange(ctx context.Context, startDay, endDay string) ([]model.CheckInWithMember, error)
	CountSinceDay(ctx context.Context, day string) (int64, error)
	DailyCounts(ctx context.Context, sinceDay string) ([]model.DailyCheckinCount, error)
	Delete(ctx context.Context, id uint) (int64, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type checkInRepository struct {
	db *gorm.DB
}

func NewCheckInRepository(db *gorm.DB) CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkin *model.CheckIn) error {
	return GetDB(ctx, r.db).Create(checkin).Error
}

func (r *checkInRepository) ListByMember(ctx context.Context, memberID uint, limit int) ([]model.CheckIn, error) {
	var checkins []model.CheckIn
	db := GetDB(ctx, r.db).Where("member_id = ?", memberID).Order("date desc")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&checkins).Error; err != nil {
		return nil, err
	}
	return checkins, nil
}

func (r *checkInRepository) ListRecent(ctx context.Context, page, limit int) ([]model.CheckInWithMember, int64, error) {
	var rows []model.CheckInWithMember
	var total int64

	base := GetDB(ctx, r.db).Model(&model.CheckIn{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := GetDB(ctx, r.db).Table("checkins").
		Select("checkins.*, members.full_name, members.phone").
		Joins("JOIN members ON members.id = checkins.member_id").
		Order("checkins.date desc").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *checkInRepository) ListByDayRange(ctx context.Context, startDay, endDay string) ([]model.CheckInWithMember, error) {
	var rows []model.CheckInWithMember
	err := GetDB(ctx, r.db).Table("checkins").
		Select("checkins.*, members.full_name, members.phone").
		Joins("JOIN members ON members.id = checkins.member_id").
		Where("checkins.checkin_day BETWEEN ? AND ?", startDay, endDay).
		Order("checkins.date desc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *checkInRepository) CountSinceDay(ctx context.Context, day string) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.CheckIn{}).
		Where("checkin_day >= ?", day).Count(&total).Error
	return total, err
}

func (r *checkInRepository) DailyCounts(ctx context.Context, sinceDay string) ([]model.DailyCheckinCount, error) {
	var rows []model.DailyCheckinCount
	err := GetDB(ctx, r.db).Table("checkins").
		Select("checkin_day AS day, COUNT(*) AS count").
		Where("checkin_day >= ?", sinceDay).
		Group("checkin_day").
		Order("checkin_day").
		Scan(&rows).Error
	return rows, err
}

func (r *checkInRepository) Delete(ctx context.Context, id uint) (int64, error) {
	res := GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.CheckIn{})
	return res.RowsAffected, res.Error
}

func (r *checkInRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.CheckIn{}).Error
}
