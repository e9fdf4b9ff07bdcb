package service

import (
	"context"
	"fmt"
	"testing"

	"gymbeauty/internal/mirror"
	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var dbSeq int

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dbSeq++
	dsn := fmt.Sprintf("file:service_%d?mode=memory&cache=shared", dbSeq)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&model.User{}, &model.Member{}, &model.CheckIn{}, &model.GymMembership{},
		&model.BeautyService{}, &model.GymInfo{}, &model.BeautyHealthInfo{}, &model.GymPayment{},
		&model.Staff{}, &model.Room{}, &model.Appointment{},
		&model.ProductCategory{}, &model.Product{}, &model.InventoryMovement{},
		&model.Sale{}, &model.SaleItem{}, &model.Refund{}, &model.RefundItem{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedMember(t *testing.T, db *gorm.DB, code string) *model.Member {
	t.Helper()
	m := &model.Member{FullName: "Test Member", Phone: "+998901234567", QRCodeID: code, GymActive: true}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("seed member: %v", err)
	}
	return m
}

func newMemberService(db *gorm.DB, m MemberMirror) MemberService {
	return NewMemberService(
		repository.NewMemberRepository(db),
		repository.NewCheckInRepository(db),
		repository.NewMembershipRepository(db),
		repository.NewBeautyServiceRepository(db),
		repository.NewGymInfoRepository(db),
		repository.NewBeautyHealthRepository(db),
		repository.NewPaymentRepository(db),
		repository.NewTransactionManager(db),
		m,
	)
}

// recordingMirror captures incremental mirror writes for assertions.
type recordingMirror struct {
	sets    []mirror.Document
	deletes []string
}

func (r *recordingMirror) Set(_ context.Context, _ string, doc mirror.Document) error {
	r.sets = append(r.sets, doc)
	return nil
}

func (r *recordingMirror) Delete(_ context.Context, _ string, id string) error {
	r.deletes = append(r.deletes, id)
	return nil
}
