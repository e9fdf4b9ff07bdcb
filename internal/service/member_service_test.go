package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gymbeauty/internal/model"
)

func TestCreateMemberGeneratesCode(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)

	member, err := svc.Create(context.Background(), CreateMemberRequest{FullName: "Aziza Karimova"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if !strings.HasPrefix(member.QRCodeID, model.QRCodePrefix) {
		t.Fatalf("code %q missing prefix", member.QRCodeID)
	}
	if len(member.QRCodeID) != len(model.QRCodePrefix)+model.QRCodeRandomLength {
		t.Fatalf("code %q has wrong length", member.QRCodeID)
	}
	for _, ch := range member.QRCodeID[len(model.QRCodePrefix):] {
		if !strings.ContainsRune(model.QRCodeAlphabet, ch) {
			t.Fatalf("code %q contains %q outside the alphabet", member.QRCodeID, ch)
		}
	}
	if member.JoinDate == nil {
		t.Fatal("joinDate not defaulted")
	}
}

func TestPreviewCodeIsUnused(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)

	code, err := svc.PreviewCode(context.Background())
	if err != nil {
		t.Fatalf("preview: %v", err)
	}
	if !strings.HasPrefix(code, model.QRCodePrefix) {
		t.Fatalf("code %q missing prefix", code)
	}

	var count int64
	db.Model(&model.Member{}).Count(&count)
	if count != 0 {
		t.Fatal("preview reserved a row")
	}

	if _, err := svc.Create(context.Background(), CreateMemberRequest{FullName: "Dilnoza", QRCodeID: code}); err != nil {
		t.Fatalf("create with previewed code: %v", err)
	}
}

func TestCreateMemberSuppliedDuplicateCode(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)
	seedMember(t, db, "TGCAAAAAA")

	_, err := svc.Create(context.Background(), CreateMemberRequest{FullName: "Second", QRCodeID: "TGCAAAAAA"})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Fatalf("err = %v, want ErrDuplicateCode", err)
	}
}

func TestCreateMemberRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)

	_, err := svc.Create(context.Background(), CreateMemberRequest{FullName: "Bad", GymEnd: "10-03-2025"})
	if err == nil || !strings.Contains(err.Error(), "gymEnd") {
		t.Fatalf("err = %v, want gymEnd parse error", err)
	}
}

func TestDeleteMemberBlockedByBeautyRecords(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)
	member := seedMember(t, db, "TGCBBBBBB")
	db.Create(&model.BeautyService{MemberID: member.ID, ServiceName: "Massaj"})

	err := svc.Delete(context.Background(), member.ID)
	if !errors.Is(err, ErrHasBeautyServices) {
		t.Fatalf("err = %v, want ErrHasBeautyServices", err)
	}

	var count int64
	db.Model(&model.Member{}).Count(&count)
	if count != 1 {
		t.Fatalf("member deleted despite salon history")
	}
}

func TestDeleteMemberCascades(t *testing.T) {
	db := newTestDB(t)
	rm := &recordingMirror{}
	svc := newMemberService(db, rm)
	member := seedMember(t, db, "TGCCCCCCC")

	db.Create(&model.CheckIn{MemberID: member.ID, QRCodeID: member.QRCodeID, CheckinDay: "2025-03-10"})
	db.Create(&model.GymMembership{MemberID: member.ID, Active: true})
	db.Create(&model.GymInfo{MemberID: member.ID, EmergencyName: "Brother"})
	db.Create(&model.BeautyHealthInfo{MemberID: member.ID})

	if err := svc.Delete(context.Background(), member.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	for _, probe := range []interface{}{
		&model.Member{}, &model.CheckIn{}, &model.GymMembership{}, &model.GymInfo{}, &model.BeautyHealthInfo{},
	} {
		var count int64
		db.Model(probe).Count(&count)
		if count != 0 {
			t.Fatalf("%T rows left after cascade", probe)
		}
	}
	if len(rm.deletes) != 1 {
		t.Fatalf("mirror deletes = %d, want 1", len(rm.deletes))
	}
}

func TestDeleteMemberUnknown(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)

	if err := svc.Delete(context.Background(), 999); !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestUpsertGymInfoIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newMemberService(db, nil)
	member := seedMember(t, db, "TGCDDDDDD")

	if err := svc.UpsertGymInfo(context.Background(), member.ID, &model.GymInfo{EmergencyName: "First"}); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if err := svc.UpsertGymInfo(context.Background(), member.ID, &model.GymInfo{EmergencyName: "Second"}); err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	var count int64
	db.Model(&model.GymInfo{}).Where("member_id = ?", member.ID).Count(&count)
	if count != 1 {
		t.Fatalf("gym info rows = %d, want 1", count)
	}
	info, err := svc.GetGymInfo(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if info.EmergencyName != "Second" {
		t.Fatalf("emergencyName = %q, want Second", info.EmergencyName)
	}
}
