package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"
	"gymbeauty/internal/timezone"

	"github.com/rs/zerolog/log"
)

// codeGenAttempts bounds the unique-code generation loop. With a 36^6 code
// space the bound only trips when the alphabet is nearly full.
const codeGenAttempts = 10

// DTOs
type CreateMemberRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Phone     string `json:"phone"`
	QRCodeID  string `json:"qrCodeId"`
	JoinDate  string `json:"joinDate"`
	GymStart  string `json:"gymStart"`
	GymEnd    string `json:"gymEnd"`
	GymActive *bool  `json:"gymActive"`
	Photo     string `json:"photo"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
	Region    string `json:"region"`
	District  string `json:"district"`
}

type UpdateMemberRequest struct {
	FullName  string `json:"fullName" binding:"required"`
	Phone     string `json:"phone"`
	JoinDate  string `json:"joinDate"`
	GymStart  string `json:"gymStart"`
	GymEnd    string `json:"gymEnd"`
	GymActive *bool  `json:"gymActive"`
	BirthDate string `json:"birthDate"`
	Email     string `json:"email"`
	Region    string `json:"region"`
	District  string `json:"district"`
}

type UpdatePhotoRequest struct {
	Photo string `json:"photo" binding:"required"`
}

// MemberMirror is the slice of the mirror store the member service touches.
// Nil when the mirror is not configured.
type MemberMirror interface {
	Delete(ctx context.Context, collection, id string) error
}

type MemberService interface {
	List(ctx context.Context, page, limit int, search string) ([]model.Member, int64, error)
	Get(ctx context.Context, id uint) (*model.Member, error)
	GetByQRCode(ctx context.Context, code string) (*model.Member, error)
	Create(ctx context.Context, req CreateMemberRequest) (*model.Member, error)
	PreviewCode(ctx context.Context) (string, error)
	Update(ctx context.Context, id uint, req UpdateMemberRequest) (*model.Member, error)
	UpdatePhoto(ctx context.Context, id uint, photo string) error
	Delete(ctx context.Context, id uint) error
	UpsertGymInfo(ctx context.Context, memberID uint, info *model.GymInfo) error
	GetGymInfo(ctx context.Context, memberID uint) (*model.GymInfo, error)
	UpsertHealthInfo(ctx context.Context, memberID uint, info *model.BeautyHealthInfo) error
	GetHealthInfo(ctx context.Context, memberID uint) (*model.BeautyHealthInfo, error)
}

type memberService struct {
	memberRepo     repository.MemberRepository
	checkinRepo    repository.CheckInRepository
	membershipRepo repository.MembershipRepository
	beautyRepo     repository.BeautyServiceRepository
	gymInfoRepo    repository.GymInfoRepository
	healthRepo     repository.BeautyHealthRepository
	paymentRepo    repository.PaymentRepository
	txManager      repository.TransactionManager
	mirror         MemberMirror
}

func NewMemberService(
	memberRepo repository.MemberRepository,
	checkinRepo repository.CheckInRepository,
	membershipRepo repository.MembershipRepository,
	beautyRepo repository.BeautyServiceRepository,
	gymInfoRepo repository.GymInfoRepository,
	healthRepo repository.BeautyHealthRepository,
	paymentRepo repository.PaymentRepository,
	txManager repository.TransactionManager,
	mirror MemberMirror,
) MemberService {
	return &memberService{
		memberRepo:     memberRepo,
		checkinRepo:    checkinRepo,
		membershipRepo: membershipRepo,
		beautyRepo:     beautyRepo,
		gymInfoRepo:    gymInfoRepo,
		healthRepo:     healthRepo,
		paymentRepo:    paymentRepo,
		txManager:      txManager,
		mirror:         mirror,
	}
}

func (s *memberService) List(ctx context.Context, page, limit int, search string) ([]model.Member, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	return s.memberRepo.List(ctx, page, limit, search)
}

func (s *memberService) Get(ctx context.Context, id uint) (*model.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

func (s *memberService) GetByQRCode(ctx context.Context, code string) (*model.Member, error) {
	member, err := s.memberRepo.FindByQRCode(ctx, code)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return member, nil
}

// Create inserts a new member. When no code is supplied one is generated and
// the insert is retried on collision; the unique index on qr_code_id is the
// arbiter, so concurrent creates cannot mint the same code.
func (s *memberService) Create(ctx context.Context, req CreateMemberRequest) (*model.Member, error) {
	member := &model.Member{
		FullName:  req.FullName,
		Phone:     req.Phone,
		GymActive: true,
		Photo:     req.Photo,
		Email:     req.Email,
		Region:    req.Region,
		District:  req.District,
	}
	if req.GymActive != nil {
		member.GymActive = *req.GymActive
	}

	var err error
	if member.JoinDate, err = parseOptionalDate(req.JoinDate); err != nil {
		return nil, fmt.Errorf("invalid joinDate: %w", err)
	}
	if member.GymStart, err = parseOptionalDate(req.GymStart); err != nil {
		return nil, fmt.Errorf("invalid gymStart: %w", err)
	}
	if member.GymEnd, err = parseOptionalDate(req.GymEnd); err != nil {
		return nil, fmt.Errorf("invalid gymEnd: %w", err)
	}
	if member.BirthDate, err = parseOptionalDate(req.BirthDate); err != nil {
		return nil, fmt.Errorf("invalid birthDate: %w", err)
	}
	if member.JoinDate == nil {
		now := timezone.Today()
		member.JoinDate = &now
	}

	if req.QRCodeID != "" {
		member.QRCodeID = req.QRCodeID
		if err := s.memberRepo.Create(ctx, member); err != nil {
			if repository.IsUniqueViolation(err) {
				return nil, ErrDuplicateCode
			}
			return nil, err
		}
		return member, nil
	}

	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		code, err := generateMemberCode()
		if err != nil {
			return nil, err
		}
		member.QRCodeID = code
		err = s.memberRepo.Create(ctx, member)
		if err == nil {
			return member, nil
		}
		if !repository.IsUniqueViolation(err) {
			return nil, err
		}
		log.Warn().Str("code", code).Int("attempt", attempt+1).Msg("member code collision, regenerating")
	}
	return nil, ErrCodeSpaceExhausted
}

// PreviewCode mints a code that is currently unused, for registration forms
// that show the code before saving. The code is not reserved; the unique
// index still decides at insert time.
func (s *memberService) PreviewCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenAttempts; attempt++ {
		code, err := generateMemberCode()
		if err != nil {
			return "", err
		}
		_, err = s.memberRepo.FindByQRCode(ctx, code)
		if repository.IsNotFound(err) {
			return code, nil
		}
		if err != nil {
			return "", err
		}
	}
	return "", ErrCodeSpaceExhausted
}

func (s *memberService) Update(ctx context.Context, id uint, req UpdateMemberRequest) (*model.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	member.FullName = req.FullName
	member.Phone = req.Phone
	member.Email = req.Email
	member.Region = req.Region
	member.District = req.District
	if req.GymActive != nil {
		member.GymActive = *req.GymActive
	}
	if member.JoinDate, err = parseOptionalDate(req.JoinDate); err != nil {
		return nil, fmt.Errorf("invalid joinDate: %w", err)
	}
	if member.GymStart, err = parseOptionalDate(req.GymStart); err != nil {
		return nil, fmt.Errorf("invalid gymStart: %w", err)
	}
	if member.GymEnd, err = parseOptionalDate(req.GymEnd); err != nil {
		return nil, fmt.Errorf("invalid gymEnd: %w", err)
	}
	if member.BirthDate, err = parseOptionalDate(req.BirthDate); err != nil {
		return nil, fmt.Errorf("invalid birthDate: %w", err)
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

func (s *memberService) UpdatePhoto(ctx context.Context, id uint, photo string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.memberRepo.UpdatePhoto(ctx, id, photo)
}

// Delete removes a member and every dependent gym record. Members with salon
// history are protected; their beauty records must be removed first.
func (s *memberService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	beautyCount, err := s.beautyRepo.CountByMember(ctx, id)
	if err != nil {
		return err
	}
	if beautyCount > 0 {
		return ErrHasBeautyServices
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.checkinRepo.DeleteByMember(txCtx, id); err != nil {
			return fmt.Errorf("delete checkins: %w", err)
		}
		if err := s.paymentRepo.DeleteByMember(txCtx, id); err != nil {
			return fmt.Errorf("delete payments: %w", err)
		}
		if err := s.membershipRepo.DeleteByMember(txCtx, id); err != nil {
			return fmt.Errorf("delete memberships: %w", err)
		}
		if err := s.gymInfoRepo.DeleteByMember(txCtx, id); err != nil {
			return fmt.Errorf("delete gym info: %w", err)
		}
		if err := s.healthRepo.DeleteByMember(txCtx, id); err != nil {
			return fmt.Errorf("delete health info: %w", err)
		}
		return s.memberRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	// Best effort: the next full sync reconciles anything missed here.
	if s.mirror != nil {
		if err := s.mirror.Delete(ctx, "members", fmt.Sprintf("%d", id)); err != nil {
			log.Warn().Err(err).Uint("member_id", id).Msg("mirror delete failed")
		}
	}
	return nil
}

func (s *memberService) UpsertGymInfo(ctx context.Context, memberID uint, info *model.GymInfo) error {
	if _, err := s.Get(ctx, memberID); err != nil {
		return err
	}
	info.MemberID = memberID
	return s.gymInfoRepo.Upsert(ctx, info)
}

func (s *memberService) GetGymInfo(ctx context.Context, memberID uint) (*model.GymInfo, error) {
	info, err := s.gymInfoRepo.FindByMember(ctx, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return info, nil
}

func (s *memberService) UpsertHealthInfo(ctx context.Context, memberID uint, info *model.BeautyHealthInfo) error {
	if _, err := s.Get(ctx, memberID); err != nil {
		return err
	}
	info.MemberID = memberID
	return s.healthRepo.Upsert(ctx, info)
}

func (s *memberService) GetHealthInfo(ctx context.Context, memberID uint) (*model.BeautyHealthInfo, error) {
	info, err := s.healthRepo.FindByMember(ctx, memberID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return info, nil
}

// generateMemberCode returns the TGC prefix plus six random characters from
// the 36-symbol alphabet.
func generateMemberCode() (string, error) {
	buf := make([]byte, model.QRCodeRandomLength)
	alphabetLen := big.NewInt(int64(len(model.QRCodeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			return "", fmt.Errorf("generate member code: %w", err)
		}
		buf[i] = model.QRCodeAlphabet[n.Int64()]
	}
	return model.QRCodePrefix + string(buf), nil
}

// parseOptionalDate parses a YYYY-MM-DD string, treating empty as absent.
func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timezone.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
