package service

import (
	"context"
	"fmt"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"github.com/shopspring/decimal"
)

// DTOs
type CreatePaymentRequest struct {
	MemberID      uint   `json:"memberId" binding:"required"`
	Amount        string `json:"amount" binding:"required"`
	PaymentDate   string `json:"paymentDate" binding:"required"`
	PeriodStart   string `json:"periodStart" binding:"required"`
	PeriodEnd     string `json:"periodEnd" binding:"required"`
	PaymentMethod string `json:"paymentMethod"`
	PaymentStatus string `json:"paymentStatus"`
	Note          string `json:"note"`
}

type PaymentService interface {
	Create(ctx context.Context, req CreatePaymentRequest) (*model.GymPayment, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.GymPayment, error)
	List(ctx context.Context, page, limit int) ([]model.GymPayment, int64, error)
}

type paymentService struct {
	memberRepo  repository.MemberRepository
	paymentRepo repository.PaymentRepository
}

func NewPaymentService(memberRepo repository.MemberRepository, paymentRepo repository.PaymentRepository) PaymentService {
	return &paymentService{memberRepo: memberRepo, paymentRepo: paymentRepo}
}

func (s *paymentService) Create(ctx context.Context, req CreatePaymentRequest) (*model.GymPayment, error) {
	if _, err := s.memberRepo.FindByID(ctx, req.MemberID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("invalid amount: %w", err)
	}
	paymentDate, err := timezone.ParseDate(req.PaymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid paymentDate: %w", err)
	}
	periodStart, err := timezone.ParseDate(req.PeriodStart)
	if err != nil {
		return nil, fmt.Errorf("invalid periodStart: %w", err)
	}
	periodEnd, err := timezone.ParseDate(req.PeriodEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid periodEnd: %w", err)
	}
	if periodEnd.Before(periodStart) {
		return nil, fmt.Errorf("periodEnd is before periodStart")
	}

	status := req.PaymentStatus
	if status == "" {
		status = model.PaymentPaid
	}

	payment := &model.GymPayment{
		MemberID:      req.MemberID,
		Amount:        amount,
		PaymentDate:   paymentDate,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: status,
		Note:          req.Note,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListByMember(ctx context.Context, memberID uint) ([]model.GymPayment, error) {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.paymentRepo.ListByMember(ctx, memberID)
}

func (s *paymentService) List(ctx context.Context, page, limit int) ([]model.GymPayment, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.paymentRepo.List(ctx, page, limit)
}
