package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"gorm.io/gorm"
)

func newCheckInService(db *gorm.DB) CheckInService {
	return NewCheckInService(
		repository.NewMemberRepository(db),
		repository.NewCheckInRepository(db),
		nil,
	)
}

func TestCheckInUnknownCode(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)

	_, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: "TGCZZZZZZ"})
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestCheckInInactiveMember(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA1")
	db.Model(member).Update("gym_active", false)

	_, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID})
	if !errors.Is(err, ErrInactiveMembership) {
		t.Fatalf("err = %v, want ErrInactiveMembership", err)
	}
}

func TestCheckInExpiredSubscription(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA2")
	yesterday := timezone.Today().AddDate(0, 0, -1)
	db.Model(member).Update("gym_end", yesterday)

	_, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID})
	var expired ExpiredError
	if !errors.As(err, &expired) {
		t.Fatalf("err = %v, want ExpiredError", err)
	}
	if !strings.Contains(expired.Error(), yesterday.Format(timezone.DateLayout)) {
		t.Fatalf("message %q missing end date", expired.Error())
	}
}

func TestCheckInEndingTodayStillAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA3")
	today := timezone.Today()
	db.Model(member).Update("gym_end", today)

	result, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if result.Member.ID != member.ID {
		t.Fatalf("member = %d, want %d", result.Member.ID, member.ID)
	}
	if result.CheckIn.VerifiedBy != "system" {
		t.Fatalf("verifiedBy = %q, want system", result.CheckIn.VerifiedBy)
	}
}

func TestCheckInOncePerDay(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA4")

	if _, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID, VerifiedBy: "reception"}); err != nil {
		t.Fatalf("first checkin: %v", err)
	}
	_, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID})
	if !errors.Is(err, ErrAlreadyCheckedInToday) {
		t.Fatalf("err = %v, want ErrAlreadyCheckedInToday", err)
	}
}

func TestCheckInHistoryUnknownMember(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)

	_, err := svc.History(context.Background(), 42, 10)
	if !errors.Is(err, ErrMemberNotFound) {
		t.Fatalf("err = %v, want ErrMemberNotFound", err)
	}
}

func TestCheckInsByDateRange(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA5")

	if _, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID}); err != nil {
		t.Fatalf("checkin: %v", err)
	}

	today := timezone.DayString(timezone.Today())
	rows, err := svc.ListByDateRange(context.Background(), today, today)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if len(rows) != 1 || rows[0].MemberID != member.ID {
		t.Fatalf("rows = %+v, want one row for member %d", rows, member.ID)
	}

	yesterday := timezone.DayString(timezone.Today().AddDate(0, 0, -1))
	if _, err := svc.ListByDateRange(context.Background(), today, yesterday); err == nil {
		t.Fatal("inverted range accepted")
	}
	if _, err := svc.ListByDateRange(context.Background(), "not-a-date", today); err == nil {
		t.Fatal("malformed date accepted")
	}
}

func TestDeleteCheckInReopensDay(t *testing.T) {
	db := newTestDB(t)
	svc := newCheckInService(db)
	member := seedMember(t, db, "TGCAAAAA6")

	first, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID})
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if err := svc.Delete(context.Background(), first.CheckIn.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(context.Background(), first.CheckIn.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if _, err := svc.Create(context.Background(), CheckInRequest{QRCodeID: member.QRCodeID}); err != nil {
		t.Fatalf("checkin after delete: %v", err)
	}
}
