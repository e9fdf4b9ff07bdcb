package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
)

type MembershipRepository interface {
	Create(ctx context.Context, m *model.GymMembership) error
	Update(ctx context.Context, m *model.GymMembership) error
	FindByID(ctx context.Context, id uint) (*model.GymMembership, error)
	FindActiveByMember(ctx context.Context, memberID uint) (*model.GymMembership, error)
	List(ctx context.Context, page, limit int) ([]model.GymMembership, int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.GymMembership, error)
	Delete(ctx context.Context, id uint) error
	DeactivateByMember(ctx context.Context, memberID uint) error
	ListActiveWithMember(ctx context.Context) ([]model.GymMembershipWithMember, error)
	DeleteByMember(ctx context.Context, memberID uint) error
}

type membershipRepository struct {
	db *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Create(ctx context.Context, m *model.GymMembership) error {
	return GetDB(ctx, r.db).Create(m).Error
}

func (r *membershipRepository) Update(ctx context.Context, m *model.GymMembership) error {
	return GetDB(ctx, r.db).Save(m).Error
}

func (r *membershipRepository) FindByID(ctx context.Context, id uint) (*model.GymMembership, error) {
	var m model.GymMembership
	if err := GetDB(ctx, r.db).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) FindActiveByMember(ctx context.Context, memberID uint) (*model.GymMembership, error) {
	var m model.GymMembership
	err := GetDB(ctx, r.db).
		Where("member_id = ? AND active = ?", memberID, true).
		Order("created_at desc").
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *membershipRepository) List(ctx context.Context, page, limit int) ([]model.GymMembership, int64, error) {
	var list []model.GymMembership
	var total int64

	db := GetDB(ctx, r.db).Model(&model.GymMembership{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *membershipRepository) ListByMember(ctx context.Context, memberID uint) ([]model.GymMembership, error) {
	var list []model.GymMembership
	err := GetDB(ctx, r.db).
		Where("member_id = ?", memberID).
		Order("created_at desc").
		Find(&list).Error
	return list, err
}

func (r *membershipRepository) DeactivateByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Model(&model.GymMembership{}).
		Where("member_id = ? AND active = ?", memberID, true).
		Update("active", false).Error
}

func (r *membershipRepository) ListActiveWithMember(ctx context.Context) ([]model.GymMembershipWithMember, error) {
	var rows []model.GymMembershipWithMember
	err := GetDB(ctx, r.db).Table("gym_memberships").
		Select("gym_memberships.*, members.full_name, members.phone, members.qr_code_id").
		Joins("JOIN members ON members.id = gym_memberships.member_id").
		Where("gym_memberships.active = ?", true).
		Scan(&rows).Error
	return rows, err
}

func (r *membershipRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.GymMembership{}).Error
}

func (r *membershipRepository) DeleteByMember(ctx context.Context, memberID uint) error {
	return GetDB(ctx, r.db).Where("member_id = ?", memberID).Delete(&model.GymMembership{}).Error
}
