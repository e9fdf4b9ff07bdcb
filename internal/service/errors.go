package service

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrMemberNotFound        = errors.New("member not found")
	ErrInactiveMembership    = errors.New("gym membership is inactive")
	ErrAlreadyCheckedInToday = errors.New("member already checked in today")
	ErrCodeSpaceExhausted    = errors.New("could not generate a unique member code")
	ErrDuplicateCode         = errors.New("member code already in use")
	ErrNoActiveMembership    = errors.New("no active membership")
	ErrHasBeautyServices     = errors.New("member has beauty service records and cannot be deleted")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUsernameTaken         = errors.New("username already in use")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrScheduleConflict      = errors.New("appointment time conflicts with an existing booking")
	ErrNotFound              = errors.New("record not found")
)

// ExpiredError is returned when a check-in is refused because the gym
// subscription ended. The end date travels with the error so the front desk
// can show it.
type ExpiredError struct {
	EndDate time.Time
}

func (e ExpiredError) Error() string {
	return fmt.Sprintf("gym membership expired on %s", e.EndDate.Format("2006-01-02"))
}
