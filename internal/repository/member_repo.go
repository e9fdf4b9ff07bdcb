package repository

import (
	"context"

	"gymbeauty/internal/model"

	"gorm.io/gorm"
)

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	Update(ctx context.Context, member *model.Member) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Member, error)
	FindByQRCode(ctx context.Context, code string) (*model.Member, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Member, int64, error)
	UpdatePhoto(ctx context.Context, id uint, photo string) error
	SetBeautyFlag(ctx context.Context, id uint, hasRecord bool) error
	Count(ctx context.Context) (int64, error)
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *model.Member) error {
	return GetDB(ctx, r.db).Create(member).Error
}

func (r *memberRepository) Update(ctx context.Context, member *model.Member) error {
	return GetDB(ctx, r.db).Save(member).Error
}

func (r *memberRepository) Delete(ctx context.Context, id uint) error {
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Member{}).Error
}

func (r *memberRepository) FindByID(ctx context.Context, id uint) (*model.Member, error) {
	var member model.Member
	if err := GetDB(ctx, r.db).First(&member, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) FindByQRCode(ctx context.Context, code string) (*model.Member, error) {
	var member model.Member
	if err := GetDB(ctx, r.db).Where("qr_code_id = ?", code).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *memberRepository) List(ctx context.Context, page, limit int, search string) ([]model.Member, int64, error) {
	var members []model.Member
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Member{})
	if search != "" {
		like := "%" + search + "%"
		db = db.Where("full_name LIKE ? OR phone LIKE ? OR qr_code_id LIKE ?", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&members).Error; err != nil {
		return nil, 0, err
	}

	return members, total, nil
}

func (r *memberRepository) UpdatePhoto(ctx context.Context, id uint, photo string) error {
	return GetDB(ctx, r.db).Model(&model.Member{}).Where("id = ?", id).Update("photo", photo).Error
}

func (r *memberRepository) SetBeautyFlag(ctx context.Context, id uint, hasRecord bool) error {
	return GetDB(ctx, r.db).Model(&model.Member{}).Where("id = ?", id).Update("beauty_has_record", hasRecord).Error
}

func (r *memberRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.Member{}).Count(&total).Error
	return total, err
}
