package service

import (
	"context"
	"fmt"

	"gymbeauty/internal/mirror"
	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DTOs
type CreateBeautyServiceRequest struct {
	MemberID        uint    `json:"memberId" binding:"required"`
	ServiceName     string  `json:"serviceName" binding:"required"`
	ServiceType     string  `json:"serviceType"`
	ServiceDate     string  `json:"serviceDate"`
	Note            string  `json:"note"`
	Amount          string  `json:"amount"`
	DiscountPercent float64 `json:"discountPercent"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentDate     string  `json:"paymentDate"`
}

type UpdateBeautyServiceRequest struct {
	ServiceName     string  `json:"serviceName" binding:"required"`
	ServiceType     string  `json:"serviceType"`
	ServiceDate     string  `json:"serviceDate"`
	Note            string  `json:"note"`
	Amount          string  `json:"amount"`
	DiscountPercent float64 `json:"discountPercent"`
	PaymentStatus   string  `json:"paymentStatus"`
	PaymentMethod   string  `json:"paymentMethod"`
	PaymentDate     string  `json:"paymentDate"`
}

// BeautyMirror is the incremental mirror surface used on writes. Nil when
// the mirror is not configured; the full sync covers the gap.
type BeautyMirror interface {
	Set(ctx context.Context, collection string, doc mirror.Document) error
	Delete(ctx context.Context, collection, id string) error
}

type BeautyService interface {
	Create(ctx context.Context, req CreateBeautyServiceRequest) (*model.BeautyService, error)
	Update(ctx context.Context, id uint, req UpdateBeautyServiceRequest) (*model.BeautyService, error)
	Delete(ctx context.Context, id uint) error
	Get(ctx context.Context, id uint) (*model.BeautyService, error)
	List(ctx context.Context, page, limit int, serviceType string) ([]model.BeautyServiceWithMember, int64, error)
	ListByMember(ctx context.Context, memberID uint) ([]model.BeautyService, error)
	Catalog() map[string]string
}

type beautyService struct {
	memberRepo repository.MemberRepository
	beautyRepo repository.BeautyServiceRepository
	txManager  repository.TransactionManager
	mirror     BeautyMirror
}

func NewBeautyService(memberRepo repository.MemberRepository, beautyRepo repository.BeautyServiceRepository, txManager repository.TransactionManager, m BeautyMirror) BeautyService {
	return &beautyService{memberRepo: memberRepo, beautyRepo: beautyRepo, txManager: txManager, mirror: m}
}

// Create records a salon service. The member's beautyHasRecord flag flips on
// in the same transaction when this is their first record.
func (s *beautyService) Create(ctx context.Context, req CreateBeautyServiceRequest) (*model.BeautyService, error) {
	member, err := s.memberRepo.FindByID(ctx, req.MemberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	svc, err := beautyServiceFromRequest(req.MemberID, req.ServiceName, req.ServiceType, req.ServiceDate,
		req.Note, req.Amount, req.DiscountPercent, req.PaymentStatus, req.PaymentMethod, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.beautyRepo.Create(txCtx, svc); err != nil {
			return err
		}
		if !member.BeautyHasRecord {
			return s.memberRepo.SetBeautyFlag(txCtx, member.ID, true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pushToMirror(ctx, svc)
	return svc, nil
}

func (s *beautyService) Update(ctx context.Context, id uint, req UpdateBeautyServiceRequest) (*model.BeautyService, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	svc, err := beautyServiceFromRequest(existing.MemberID, req.ServiceName, req.ServiceType, req.ServiceDate,
		req.Note, req.Amount, req.DiscountPercent, req.PaymentStatus, req.PaymentMethod, req.PaymentDate)
	if err != nil {
		return nil, err
	}
	svc.ID = existing.ID

	if err := s.beautyRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.pushToMirror(ctx, svc)
	return svc, nil
}

// Delete removes a salon record. When it was the member's last one, the
// beautyHasRecord flag flips back off in the same transaction.
func (s *beautyService) Delete(ctx context.Context, id uint) error {
	svc, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.beautyRepo.Delete(txCtx, id); err != nil {
			return err
		}
		remaining, err := s.beautyRepo.CountByMember(txCtx, svc.MemberID)
		if err != nil {
			return err
		}
		if remaining == 0 {
			return s.memberRepo.SetBeautyFlag(txCtx, svc.MemberID, false)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, "beauty_services", fmt.Sprintf("%d", id)); err != nil {
			log.Warn().Err(err).Uint("id", id).Msg("mirror delete failed")
		}
	}
	return nil
}

func (s *beautyService) Get(ctx context.Context, id uint) (*model.BeautyService, error) {
	svc, err := s.beautyRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return svc, nil
}

func (s *beautyService) List(ctx context.Context, page, limit int, serviceType string) ([]model.BeautyServiceWithMember, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.beautyRepo.List(ctx, page, limit, serviceType)
}

func (s *beautyService) ListByMember(ctx context.Context, memberID uint) ([]model.BeautyService, error) {
	if _, err := s.memberRepo.FindByID(ctx, memberID); err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return s.beautyRepo.ListByMember(ctx, memberID)
}

func (s *beautyService) Catalog() map[string]string {
	return model.BeautyServiceLabels
}

// pushToMirror mirrors one record immediately so the remote copy stays warm
// between full syncs. Failures only log; the full sync reconciles later.
func (s *beautyService) pushToMirror(ctx context.Context, svc *model.BeautyService) {
	if s.mirror == nil {
		return
	}
	doc := mirror.Document{
		ID: fmt.Sprintf("%d", svc.ID),
		Data: map[string]interface{}{
			"id":               svc.ID,
			"member_id":        svc.MemberID,
			"service_name":     svc.ServiceName,
			"service_type":     svc.ServiceType,
			"service_date":     svc.ServiceDate,
			"note":             svc.Note,
			"amount":           svc.Amount.InexactFloat64(),
			"discount_percent": svc.DiscountPercent,
			"payment_status":   svc.PaymentStatus,
			"payment_method":   svc.PaymentMethod,
		},
	}
	if svc.PaymentDate != nil {
		doc.Data["payment_date"] = *svc.PaymentDate
	}
	if err := s.mirror.Set(ctx, "beauty_services", doc); err != nil {
		log.Warn().Err(err).Uint("id", svc.ID).Msg("mirror push failed")
	}
}

func beautyServiceFromRequest(memberID uint, name, serviceType, serviceDate, note, amount string, discount float64, paymentStatus, paymentMethod, paymentDate string) (*model.BeautyService, error) {
	if serviceType != "" && !model.ValidBeautyServiceType(serviceType) {
		return nil, fmt.Errorf("unknown serviceType %q", serviceType)
	}

	// An omitted service date means the service was rendered just now.
	var err error
	date := timezone.Now()
	if serviceDate != "" {
		if date, err = timezone.ParseDate(serviceDate); err != nil {
			return nil, fmt.Errorf("invalid serviceDate: %w", err)
		}
	}

	amt := decimal.Zero
	if amount != "" {
		if amt, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount: %w", err)
		}
	}
	if discount < 0 || discount > 100 {
		return nil, fmt.Errorf("discountPercent must be between 0 and 100")
	}

	if paymentStatus == "" {
		paymentStatus = model.PaymentPending
	}

	payDate, err := parseOptionalDate(paymentDate)
	if err != nil {
		return nil, fmt.Errorf("invalid paymentDate: %w", err)
	}

	return &model.BeautyService{
		MemberID:        memberID,
		ServiceName:     name,
		ServiceType:     serviceType,
		ServiceDate:     date,
		Note:            note,
		Amount:          amt,
		DiscountPercent: discount,
		PaymentStatus:   paymentStatus,
		PaymentMethod:   paymentMethod,
		PaymentDate:     payDate,
	}, nil
}
