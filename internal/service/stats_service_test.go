package service

import (
	"context"
	"testing"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"gorm.io/gorm"
)

func newStatsService(db *gorm.DB) StatsService {
	return NewStatsService(
		repository.NewMemberRepository(db),
		repository.NewCheckInRepository(db),
		repository.NewMembershipRepository(db),
		repository.NewBeautyServiceRepository(db),
	)
}

func TestOverviewCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()

	today := timezone.Today()
	m1 := seedMember(t, db, "TGCSTAT01")
	m2 := seedMember(t, db, "TGCSTAT02")
	m3 := seedMember(t, db, "TGCSTAT03")

	// Visits: two today, one last month.
	db.Create(&model.CheckIn{MemberID: m1.ID, Date: timezone.Now(), CheckinDay: timezone.DayString(today)})
	db.Create(&model.CheckIn{MemberID: m2.ID, Date: timezone.Now(), CheckinDay: timezone.DayString(today)})
	oldDay := today.AddDate(0, -2, 0)
	db.Create(&model.CheckIn{MemberID: m3.ID, Date: oldDay, CheckinDay: timezone.DayString(oldDay)})

	// Subscriptions: one healthy, one in the warning window, one expired.
	farEnd := today.AddDate(0, 0, 90)
	soonEnd := today.AddDate(0, 0, 2)
	pastEnd := today.AddDate(0, 0, -5)
	db.Create(&model.GymMembership{MemberID: m1.ID, StartDate: today.AddDate(0, -1, 0), EndDate: &farEnd, Active: true})
	db.Create(&model.GymMembership{MemberID: m2.ID, StartDate: today.AddDate(0, -1, 0), EndDate: &soonEnd, Active: true})
	db.Create(&model.GymMembership{MemberID: m3.ID, StartDate: today.AddDate(0, -1, 0), EndDate: &pastEnd, Active: true})

	db.Create(&model.BeautyService{MemberID: m1.ID, ServiceName: "Massaj", ServiceDate: today})
	db.Create(&model.BeautyService{MemberID: m2.ID, ServiceName: "Manikyur", ServiceDate: today.AddDate(0, 0, -10)})

	overview, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	if overview.Checkins.Today != 2 {
		t.Fatalf("checkins today = %d, want 2", overview.Checkins.Today)
	}
	if overview.Checkins.ThisMonth < 2 {
		t.Fatalf("checkins this month = %d, want >= 2", overview.Checkins.ThisMonth)
	}
	if overview.Members.Total != 3 {
		t.Fatalf("members total = %d, want 3", overview.Members.Total)
	}
	if overview.Members.Active != 1 || overview.Members.ExpiringSoon != 1 || overview.Members.Expired != 1 {
		t.Fatalf("member states = %+v", overview.Members)
	}
	if overview.BeautyServices.Total != 2 {
		t.Fatalf("beauty total = %d, want 2", overview.BeautyServices.Total)
	}
	if overview.BeautyServices.Today != 1 {
		t.Fatalf("beauty today = %d, want 1", overview.BeautyServices.Today)
	}
}

func TestDailyCheckinsSeries(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(db)
	ctx := context.Background()

	today := timezone.Today()
	m := seedMember(t, db, "TGCSTAT04")
	for offset := 0; offset < 3; offset++ {
		day := today.AddDate(0, 0, -offset)
		db.Create(&model.CheckIn{MemberID: m.ID + uint(offset), Date: day, CheckinDay: timezone.DayString(day)})
	}

	rows, err := svc.DailyCheckins(ctx, 7)
	if err != nil {
		t.Fatalf("daily: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	for _, row := range rows {
		if row.Count != 1 {
			t.Fatalf("day %s count = %d, want 1", row.Day, row.Count)
		}
	}
}
