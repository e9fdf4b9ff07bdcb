package service

import (
	"context"
	"errors"
	"testing"

	"gymbeauty/internal/domain/membership"
	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"gorm.io/gorm"
)

func newMembershipService(db *gorm.DB) MembershipService {
	return NewMembershipService(
		repository.NewMemberRepository(db),
		repository.NewMembershipRepository(db),
		repository.NewTransactionManager(db),
	)
}

func dayFromToday(offset int) string {
	return timezone.DayString(timezone.Today().AddDate(0, 0, offset))
}

func TestCreateMembershipClosesPreviousPeriod(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	member := seedMember(t, db, "TGCMEMB01")

	first, err := svc.Create(context.Background(), CreateMembershipRequest{
		MemberID: member.ID, StartDate: dayFromToday(-60), EndDate: dayFromToday(-30),
	})
	if err != nil {
		t.Fatalf("first period: %v", err)
	}
	second, err := svc.Create(context.Background(), CreateMembershipRequest{
		MemberID: member.ID, StartDate: dayFromToday(0), EndDate: dayFromToday(30),
	})
	if err != nil {
		t.Fatalf("second period: %v", err)
	}

	var old model.GymMembership
	db.First(&old, first.ID)
	if old.Active {
		t.Fatal("previous period still active")
	}

	active, err := svc.GetActive(context.Background(), member.ID)
	if err != nil {
		t.Fatalf("get active: %v", err)
	}
	if active.ID != second.ID {
		t.Fatalf("active = %d, want %d", active.ID, second.ID)
	}

	var fresh model.Member
	db.First(&fresh, member.ID)
	if fresh.GymEnd == nil || timezone.DayString(*fresh.GymEnd) != dayFromToday(30) {
		t.Fatalf("member gym window not updated: %v", fresh.GymEnd)
	}
	if !fresh.GymActive {
		t.Fatal("member not reactivated")
	}
}

func TestCreateMembershipRejectsUnknownType(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	member := seedMember(t, db, "TGCMEMB02")

	_, err := svc.Create(context.Background(), CreateMembershipRequest{
		MemberID: member.ID, StartDate: dayFromToday(0), MembershipType: "weekly",
	})
	if err == nil {
		t.Fatal("unknown membership type accepted")
	}
}

func TestDeactivateClearsMemberFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	member := seedMember(t, db, "TGCMEMB03")

	period, err := svc.Create(context.Background(), CreateMembershipRequest{
		MemberID: member.ID, StartDate: dayFromToday(0), EndDate: dayFromToday(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Deactivate(context.Background(), period.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := svc.GetActive(context.Background(), member.ID); !errors.Is(err, ErrNoActiveMembership) {
		t.Fatalf("err = %v, want ErrNoActiveMembership", err)
	}
	var fresh model.Member
	db.First(&fresh, member.ID)
	if fresh.GymActive {
		t.Fatal("member still flagged active")
	}
}

func TestDeleteMembershipRefreshesMemberFlag(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)
	member := seedMember(t, db, "TGCMEMB04")

	period, err := svc.Create(context.Background(), CreateMembershipRequest{
		MemberID: member.ID, StartDate: dayFromToday(0), EndDate: dayFromToday(30),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(context.Background(), period.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var count int64
	db.Model(&model.GymMembership{}).Where("id = ?", period.ID).Count(&count)
	if count != 0 {
		t.Fatal("period row still present")
	}
	var fresh model.Member
	db.First(&fresh, member.ID)
	if fresh.GymActive {
		t.Fatal("member still flagged active")
	}

	if err := svc.Delete(context.Background(), period.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestListActiveOrdersByUrgency(t *testing.T) {
	db := newTestDB(t)
	svc := newMembershipService(db)

	seed := func(code, end string) uint {
		t.Helper()
		m := seedMember(t, db, code)
		req := CreateMembershipRequest{MemberID: m.ID, StartDate: dayFromToday(-30)}
		req.EndDate = end
		if _, err := svc.Create(context.Background(), req); err != nil {
			t.Fatalf("seed membership for %s: %v", code, err)
		}
		return m.ID
	}

	healthy := seed("TGCORD001", dayFromToday(90))
	expiring := seed("TGCORD002", dayFromToday(3))
	expired := seed("TGCORD003", dayFromToday(-2))
	openEnded := seed("TGCORD004", "")

	rows, err := svc.ListActive(context.Background())
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("rows = %d, want 4", len(rows))
	}

	wantOrder := []uint{openEnded, expired, expiring, healthy}
	for i, want := range wantOrder {
		if rows[i].MemberID != want {
			t.Fatalf("rows[%d].MemberID = %d, want %d", i, rows[i].MemberID, want)
		}
	}

	wantStatus := []string{
		membership.StatusNoEndDate, membership.StatusExpired,
		membership.StatusExpiringSoon, membership.StatusActive,
	}
	for i, want := range wantStatus {
		if rows[i].Status != want {
			t.Fatalf("rows[%d].Status = %q, want %q", i, rows[i].Status, want)
		}
	}
	if rows[2].DaysRemaining == nil || *rows[2].DaysRemaining != 3 {
		t.Fatalf("expiring daysRemaining = %v, want 3", rows[2].DaysRemaining)
	}
}
