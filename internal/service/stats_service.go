package service

import (
	"context"
	"time"

	"gymbeauty/internal/domain/membership"
	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"
)

type StatsService interface {
	Overview(ctx context.Context) (*model.StatsOverview, error)
	DailyCheckins(ctx context.Context, days int) ([]model.DailyCheckinCount, error)
}

type statsService struct {
	memberRepo     repository.MemberRepository
	checkinRepo    repository.CheckInRepository
	membershipRepo repository.MembershipRepository
	beautyRepo     repository.BeautyServiceRepository
}

func NewStatsService(
	memberRepo repository.MemberRepository,
	checkinRepo repository.CheckInRepository,
	membershipRepo repository.MembershipRepository,
	beautyRepo repository.BeautyServiceRepository,
) StatsService {
	return &statsService{
		memberRepo:     memberRepo,
		checkinRepo:    checkinRepo,
		membershipRepo: membershipRepo,
		beautyRepo:     beautyRepo,
	}
}

func (s *statsService) Overview(ctx context.Context) (*model.StatsOverview, error) {
	today := timezone.Today()
	todayStr := timezone.DayString(today)
	weekStart := timezone.DayString(today.AddDate(0, 0, -int(mondayOffset(today))))
	monthStart := timezone.DayString(time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()))

	out := &model.StatsOverview{}
	var err error

	if out.Checkins.Today, err = s.checkinRepo.CountSinceDay(ctx, todayStr); err != nil {
		return nil, err
	}
	if out.Checkins.ThisWeek, err = s.checkinRepo.CountSinceDay(ctx, weekStart); err != nil {
		return nil, err
	}
	if out.Checkins.ThisMonth, err = s.checkinRepo.CountSinceDay(ctx, monthStart); err != nil {
		return nil, err
	}

	if out.Members.Total, err = s.memberRepo.Count(ctx); err != nil {
		return nil, err
	}

	active, err := s.membershipRepo.ListActiveWithMember(ctx)
	if err != nil {
		return nil, err
	}
	for _, row := range active {
		switch membership.Evaluate(row.EndDate, today).Status {
		case membership.StatusExpired:
			out.Members.Expired++
		case membership.StatusExpiringSoon:
			out.Members.ExpiringSoon++
		default:
			out.Members.Active++
		}
	}

	if out.BeautyServices.Total, err = s.beautyRepo.Count(ctx); err != nil {
		return nil, err
	}
	if out.BeautyServices.Today, err = s.beautyRepo.CountSince(ctx, today); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *statsService) DailyCheckins(ctx context.Context, days int) ([]model.DailyCheckinCount, error) {
	if days <= 0 {
		days = 30
	}
	since := timezone.DayString(timezone.Today().AddDate(0, 0, -(days - 1)))
	return s.checkinRepo.DailyCounts(ctx, since)
}

// mondayOffset returns how many days back the current ISO week started.
func mondayOffset(t time.Time) time.Weekday {
	wd := t.Weekday()
	if wd == time.Sunday {
		return 6
	}
	return wd - time.Monday
}
