package service

import (
	"context"
	"fmt"
	"time"

	"gymbeauty/internal/model"
	"gymbeauty/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DTOs
type CreateAppointmentRequest struct {
	MemberID    *uint  `json:"memberId"`
	GuestName   string `json:"guestName"`
	GuestPhone  string `json:"guestPhone"`
	ServiceName string `json:"serviceName" binding:"required"`
	StaffID     string `json:"staffId" binding:"required"`
	RoomID      string `json:"roomId"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Price       string `json:"price"`
	Notes       string `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CreateStaffRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Role         string `json:"role"`
	WorkingHours string `json:"workingHours"`
}

type CreateRoomRequest struct {
	Name string `json:"name" binding:"required"`
}

type AppointmentService interface {
	Create(ctx context.Context, req CreateAppointmentRequest) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Appointment, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	List(ctx context.Context, from, to time.Time, staffID *uuid.UUID, status string) ([]model.Appointment, error)
	CreateStaff(ctx context.Context, req CreateStaffRequest) (*model.Staff, error)
	ListStaff(ctx context.Context, activeOnly bool) ([]model.Staff, error)
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*model.Room, error)
	ListRooms(ctx context.Context) ([]model.Room, error)
}

type appointmentService struct {
	appointmentRepo repository.AppointmentRepository
	staffRepo       repository.StaffRepository
	roomRepo        repository.RoomRepository
	memberRepo      repository.MemberRepository
	txManager       repository.TransactionManager
}

func NewAppointmentService(
	appointmentRepo repository.AppointmentRepository,
	staffRepo repository.StaffRepository,
	roomRepo repository.RoomRepository,
	memberRepo repository.MemberRepository,
	txManager repository.TransactionManager,
) AppointmentService {
	return &appointmentService{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		roomRepo:        roomRepo,
		memberRepo:      memberRepo,
		txManager:       txManager,
	}
}

// Create books a salon visit. The booking fails with ErrScheduleConflict if
// the staff member or room is already taken anywhere in the requested window.
func (s *appointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*model.Appointment, error) {
	staffID, err := uuid.Parse(req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("invalid staffId: %w", err)
	}
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, fmt.Errorf("staff member not found")
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, fmt.Errorf("staff member is not active")
	}

	var roomID *uuid.UUID
	if req.RoomID != "" {
		parsed, err := uuid.Parse(req.RoomID)
		if err != nil {
			return nil, fmt.Errorf("invalid roomId: %w", err)
		}
		roomID = &parsed
	}

	start, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid startTime: %w", err)
	}
	end, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid endTime: %w", err)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("endTime must be after startTime")
	}

	if req.MemberID != nil {
		if _, err := s.memberRepo.FindByID(ctx, *req.MemberID); err != nil {
			if repository.IsNotFound(err) {
				return nil, ErrMemberNotFound
			}
			return nil, err
		}
	} else if req.GuestName == "" {
		return nil, fmt.Errorf("either memberId or guestName is required")
	}

	price := decimal.Zero
	if req.Price != "" {
		if price, err = decimal.NewFromString(req.Price); err != nil {
			return nil, fmt.Errorf("invalid price: %w", err)
		}
	}

	appointment := &model.Appointment{
		MemberID:    req.MemberID,
		GuestName:   req.GuestName,
		GuestPhone:  req.GuestPhone,
		ServiceName: req.ServiceName,
		StaffID:     staffID,
		RoomID:      roomID,
		StartTime:   start,
		EndTime:     end,
		Price:       price,
		Notes:       req.Notes,
		Status:      model.AppointmentScheduled,
	}

	// The conflict check and the insert share one transaction so two
	// overlapping bookings cannot both pass the check.
	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		conflicts, err := s.appointmentRepo.FindOverlapping(txCtx, staffID, roomID, start, end, nil)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return ErrScheduleConflict
		}
		return s.appointmentRepo.Create(txCtx, appointment)
	})
	if err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*model.Appointment, error) {
	if !model.ValidAppointmentStatus(status) {
		return nil, fmt.Errorf("invalid status %q", status)
	}
	appointment, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	appointment.Status = status
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return appointment, nil
}

func (s *appointmentService) List(ctx context.Context, from, to time.Time, staffID *uuid.UUID, status string) ([]model.Appointment, error) {
	return s.appointmentRepo.List(ctx, from, to, staffID, status)
}

func (s *appointmentService) CreateStaff(ctx context.Context, req CreateStaffRequest) (*model.Staff, error) {
	staff := &model.Staff{
		FullName:         req.FullName,
		Role:             req.Role,
		IsActive:         true,
		WorkingHoursJSON: req.WorkingHours,
	}
	if err := s.staffRepo.Create(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}

func (s *appointmentService) ListStaff(ctx context.Context, activeOnly bool) ([]model.Staff, error) {
	return s.staffRepo.List(ctx, activeOnly)
}

func (s *appointmentService) CreateRoom(ctx context.Context, req CreateRoomRequest) (*model.Room, error) {
	room := &model.Room{Name: req.Name}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *appointmentService) ListRooms(ctx context.Context) ([]model.Room, error) {
	return s.roomRepo.List(ctx)
}
