package service

import (
	"context"
	"errors"
	"testing"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"gorm.io/gorm"
)

func newBeautyService(db *gorm.DB, m BeautyMirror) BeautyService {
	return NewBeautyService(
		repository.NewMemberRepository(db),
		repository.NewBeautyServiceRepository(db),
		repository.NewTransactionManager(db),
		m,
	)
}

func beautyRequest(memberID uint) CreateBeautyServiceRequest {
	return CreateBeautyServiceRequest{
		MemberID:    memberID,
		ServiceName: "Lazer epilyatsiya",
		ServiceType: "laser_epilation",
		ServiceDate: timezone.DayString(timezone.Today()),
		Amount:      "150000",
	}
}

func TestBeautyCreateFlipsMemberFlag(t *testing.T) {
	db := newTestDB(t)
	rm := &recordingMirror{}
	svc := newBeautyService(db, rm)
	member := seedMember(t, db, "TGCBEAUT1")

	created, err := svc.Create(context.Background(), beautyRequest(member.ID))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.PaymentStatus != model.PaymentPending {
		t.Fatalf("paymentStatus = %q, want pending default", created.PaymentStatus)
	}

	var fresh model.Member
	db.First(&fresh, member.ID)
	if !fresh.BeautyHasRecord {
		t.Fatal("beautyHasRecord not flipped on")
	}
	if len(rm.sets) != 1 {
		t.Fatalf("mirror sets = %d, want 1", len(rm.sets))
	}
}

func TestBeautyDeleteLastRecordClearsFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newBeautyService(db, nil)
	member := seedMember(t, db, "TGCBEAUT2")

	first, err := svc.Create(context.Background(), beautyRequest(member.ID))
	if err != nil {
		t.Fatalf("create first: %v", err)
	}
	second, err := svc.Create(context.Background(), beautyRequest(member.ID))
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	if err := svc.Delete(context.Background(), first.ID); err != nil {
		t.Fatalf("delete first: %v", err)
	}
	var fresh model.Member
	db.First(&fresh, member.ID)
	if !fresh.BeautyHasRecord {
		t.Fatal("flag cleared while a record remains")
	}

	if err := svc.Delete(context.Background(), second.ID); err != nil {
		t.Fatalf("delete second: %v", err)
	}
	db.First(&fresh, member.ID)
	if fresh.BeautyHasRecord {
		t.Fatal("flag not cleared after last record removed")
	}
}

func TestBeautyCreateDefaultsServiceDate(t *testing.T) {
	db := newTestDB(t)
	svc := newBeautyService(db, nil)
	member := seedMember(t, db, "TGCBEAUT5")

	req := beautyRequest(member.ID)
	req.ServiceDate = ""
	created, err := svc.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("create without serviceDate: %v", err)
	}
	if got := timezone.DayString(created.ServiceDate); got != timezone.DayString(timezone.Today()) {
		t.Fatalf("serviceDate = %s, want today", got)
	}

	req.ServiceDate = "03/05/2025"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("malformed serviceDate accepted")
	}
}

func TestBeautyCreateRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	svc := newBeautyService(db, nil)
	member := seedMember(t, db, "TGCBEAUT3")

	req := beautyRequest(member.ID)
	req.ServiceType = "tanning"
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("unknown service type accepted")
	}
}

func TestBeautyCreateRejectsBadDiscount(t *testing.T) {
	db := newTestDB(t)
	svc := newBeautyService(db, nil)
	member := seedMember(t, db, "TGCBEAUT4")

	req := beautyRequest(member.ID)
	req.DiscountPercent = 120
	if _, err := svc.Create(context.Background(), req); err == nil {
		t.Fatal("discount over 100 accepted")
	}
}

func TestBeautyCreateUnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := newBeautyService(db, nil)

	_, err := svc.Create(context.Background(), beautyRequest(777))
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}
