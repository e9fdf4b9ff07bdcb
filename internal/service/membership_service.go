package service

import (
	"context"
	"fmt"
	"sort"

	"gymbeauty/internal/domain/membership"
	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"
)

// DTOs
type CreateMembershipRequest struct {
	MemberID       uint   `json:"memberId" binding:"required"`
	StartDate      string `json:"startDate" binding:"required"`
	EndDate        string `json:"endDate"`
	MembershipType string `json:"membershipType"`
}

type UpdateMembershipRequest struct {
	StartDate      string `json:"startDate"`
	EndDate        string `json:"endDate"`
	MembershipType string `json:"membershipType"`
	Active         *bool  `json:"active"`
}

type MembershipService interface {
	Create(ctx context.Context, req CreateMembershipRequest) (*model.GymMembership, error)
	Update(ctx context.Context, id uint, req UpdateMembershipRequest) (*model.GymMembership, error)
	GetActive(ctx context.Context, memberID uint) (*model.GymMembership, error)
	List(ctx context.Context, page, limit int) ([]model.GymMembership, int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.GymMembership, error)
	Deactivate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
	ListActive(ctx context.Context) ([]model.ActiveMembershipRow, error)
}

type membershipService struct {
	memberRepo     repository.MemberRepository
	membershipRepo repository.MembershipRepository
	txManager      repository.TransactionManager
}

func NewMembershipService(memberRepo repository.MemberRepository, membershipRepo repository.MembershipRepository, txManager repository.TransactionManager) MembershipService {
	return &membershipService{memberRepo: memberRepo, membershipRepo: membershipRepo, txManager: txManager}
}

// Create opens a new subscription period. Any previously active period for
// the member is closed in the same transaction, and the member's cached gym
// window is kept in step.
func (s *membershipService) Create(ctx context.Context, req CreateMembershipRequest) (*model.GymMembership, error) {
	member, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	start, err := timezone.ParseDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	membershipType := req.MembershipType
	if membershipType == "" {
		membershipType = model.MembershipMonthly
	}
	if !model.ValidMembershipType(membershipType) {
		return nil, fmt.Errorf("invalid membershipType %q", membershipType)
	}

	m := &model.GymMembership{
		MemberID:       req.MemberID,
		StartDate:      start,
		EndDate:        end,
		MembershipType: membershipType,
		Active:         true,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.membershipRepo.DeactivateByMember(txCtx, req.MemberID); err != nil {
			return err
		}
		if err := s.membershipRepo.Create(txCtx, m); err != nil {
			return err
		}
		member.GymStart = &start
		member.GymEnd = end
		member.GymActive = true
		return s.memberRepo.Update(txCtx, member)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *membershipService) Update(ctx context.Context, id uint, req UpdateMembershipRequest) (*model.GymMembership, error) {
	m, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if req.StartDate != "" {
		start, err := timezone.ParseDate(req.StartDate)
		if err != nil {
			return nil, fmt.Errorf("invalid startDate: %w", err)
		}
		m.StartDate = start
	}
	if req.EndDate != "" {
		end, err := parseOptionalDate(req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("invalid endDate: %w", err)
		}
		m.EndDate = end
	}
	if req.MembershipType != "" {
		if !model.ValidMembershipType(req.MembershipType) {
			return nil, fmt.Errorf("invalid membershipType %q", req.MembershipType)
		}
		m.MembershipType = req.MembershipType
	}
	if req.Active != nil {
		m.Active = *req.Active
	}

	if err := s.membershipRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *membershipService) GetActive(ctx context.Context, memberID uint) (*model.GymMembership, error) {
	m, err := s.membershipRepo.FindActiveByMember(ctx, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNoActiveMembership
		}
		return nil, err
	}
	return m, nil
}

func (s *membershipService) List(ctx context.Context, page, limit int) ([]model.GymMembership, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.membershipRepo.List(ctx, page, limit)
}

func (s *membershipService) ListByMember(ctx context.Context, memberID uint) ([]model.GymMembership, error) {
	return s.membershipRepo.ListByMember(ctx, memberID)
}

// Deactivate closes one subscription period. The member's cached gym flag is
// cleared only when no active period remains afterwards.
func (s *membershipService) Deactivate(ctx context.Context, id uint) error {
	m, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		m.Active = false
		if err := s.membershipRepo.Update(txCtx, m); err != nil {
			return err
		}
		return s.refreshMemberFlag(txCtx, m.MemberID)
	})
}

// Delete removes a subscription period outright, keeping the member's cached
// gym flag in step the same way Deactivate does.
func (s *membershipService) Delete(ctx context.Context, id uint) error {
	m, err := s.membershipRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.membershipRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.refreshMemberFlag(txCtx, m.MemberID)
	})
}

func (s *membershipService) refreshMemberFlag(ctx context.Context, memberID uint) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	_, err = s.membershipRepo.FindActiveByMember(ctx, memberID)
	switch {
	case err == nil:
		return nil
	case repository.IsNotFound(err):
		member.GymActive = false
		return s.memberRepo.Update(ctx, member)
	default:
		return err
	}
}

// ListActive returns every active subscription with its derived lifecycle
// status: open-ended first, then expired, expiring soon and active, ties
// broken by the sooner end date.
func (s *membershipService) ListActive(ctx context.Context) ([]model.ActiveMembershipRow, error) {
	rows, err := s.membershipRepo.ListActiveWithMember(ctx)
	if err != nil {
		return nil, err
	}

	today := timezone.Today()
	out := make([]model.ActiveMembershipRow, 0, len(rows))
	for _, r := range rows {
		ev := membership.Evaluate(r.EndDate, today)
		row := model.ActiveMembershipRow{
			MemberID:       r.MemberID,
			FullName:       r.FullName,
			Phone:          r.Phone,
			QRCodeID:       r.QRCodeID,
			MembershipType: r.MembershipType,
			Status:         ev.Status,
			DaysRemaining:  ev.DaysRemaining,
		}
		start := r.StartDate.Format(timezone.DateLayout)
		row.StartDate = &start
		if r.EndDate != nil {
			end := r.EndDate.Format(timezone.DateLayout)
			row.EndDate = &end
		}
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := membership.SortPriority(out[i].Status), membership.SortPriority(out[j].Status)
		if pi != pj {
			return pi < pj
		}
		switch {
		case out[i].EndDate == nil:
			return false
		case out[j].EndDate == nil:
			return true
		default:
			return *out[i].EndDate < *out[j].EndDate
		}
	})
	return out, nil
}
