package service

import (
	"context"
	"fmt"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"
	ws "gymbeauty/internal/websocket"
)

// DTOs
type CheckInRequest struct {
	QRCodeID   string `json:"qrCodeId" binding:"required"`
	VerifiedBy string `json:"verifiedBy"`
}

type CheckInResult struct {
	CheckIn model.CheckIn       `json:"checkin"`
	Member  model.MemberSummary `json:"member"`
}

type CheckInService interface {
	Create(ctx context.Context, req CheckInRequest) (*CheckInResult, error)
	History(ctx context.Context, memberID uint, limit int) ([]model.CheckIn, error)
	Recent(ctx context.Context, page, limit int) ([]model.CheckInWithMember, int64, error)
	ListByDateRange(ctx context.Context, startDate, endDate string) ([]model.CheckInWithMember, error)
	Delete(ctx context.Context, id uint) error
}

type checkInService struct {
	memberRepo  repository.MemberRepository
	checkinRepo repository.CheckInRepository
	hub         *ws.Hub
}

func NewCheckInService(memberRepo repository.MemberRepository, checkinRepo repository.CheckInRepository, hub *ws.Hub) CheckInService {
	return &checkInService{memberRepo: memberRepo, checkinRepo: checkinRepo, hub: hub}
}

// Create records an attendance event after walking the gate checks in order:
// unknown code, inactive flag, expired subscription, then the one-per-day
// rule. The last check is enforced by the (member, day) unique index, so two
// concurrent scans cannot both pass.
func (s *checkInService) Create(ctx context.Context, req CheckInRequest) (*CheckInResult, error) {
	member, err := s.memberRepo.FindByQRCode(ctx, req.QRCodeID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if !member.GymActive {
		return nil, ErrInactiveMembership
	}

	now := timezone.Now()
	today := timezone.Today()
	if member.GymEnd != nil && member.GymEnd.Before(today) {
		return nil, ExpiredError{EndDate: *member.GymEnd}
	}

	verifiedBy := req.VerifiedBy
	if verifiedBy == "" {
		verifiedBy = "system"
	}

	checkin := model.CheckIn{
		MemberID:   member.ID,
		QRCodeID:   member.QRCodeID,
		Date:       now,
		CheckinDay: timezone.DayString(now),
		VerifiedBy: verifiedBy,
	}
	if err := s.checkinRepo.Create(ctx, &checkin); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyCheckedInToday
		}
		return nil, err
	}

	result := &CheckInResult{CheckIn: checkin, Member: member.Summary()}
	if s.hub != nil {
		s.hub.BroadcastEvent(ws.EventCheckin, result)
	}
	return result, nil
}

func (s *checkInService) History(ctx context.Context, memberID uint, limit int) ([]model.CheckIn, error) {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.checkinRepo.ListByMember(ctx, memberID, limit)
}

func (s *checkInService) Recent(ctx context.Context, page, limit int) ([]model.CheckInWithMember, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.checkinRepo.ListRecent(ctx, page, limit)
}

func (s *checkInService) ListByDateRange(ctx context.Context, startDate, endDate string) ([]model.CheckInWithMember, error) {
	start, err := timezone.ParseDate(startDate)
	if err != nil {
		return nil, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := timezone.ParseDate(endDate)
	if err != nil {
		return nil, fmt.Errorf("invalid end date: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("end date %s precedes start date %s", endDate, startDate)
	}
	return s.checkinRepo.ListByDayRange(ctx, timezone.DayString(start), timezone.DayString(end))
}

func (s *checkInService) Delete(ctx context.Context, id uint) error {
	affected, err := s.checkinRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
