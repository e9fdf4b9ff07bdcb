package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gymbeauty/internal/middleware"
	"gymbeauty/internal/model"
	"gymbeauty/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func makeToken(t *testing.T, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":      uint(1),
		"username": "tester",
		"role":     role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(middleware.GetJWTSecret())
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

// stubCheckInService returns canned responses for handler mapping tests.
type stubCheckInService struct {
	createErr error
	result    *service.CheckInResult
}

func (s *stubCheckInService) Create(context.Context, service.CheckInRequest) (*service.CheckInResult, error) {
	return s.result, s.createErr
}

func (s *stubCheckInService) History(context.Context, uint, int) ([]model.CheckIn, error) {
	return nil, nil
}

func (s *stubCheckInService) Recent(context.Context, int, int) ([]model.CheckInWithMember, int64, error) {
	return nil, 0, nil
}

func (s *stubCheckInService) ListByDateRange(context.Context, string, string) ([]model.CheckInWithMember, error) {
	return nil, nil
}

func (s *stubCheckInService) Delete(context.Context, uint) error {
	return nil
}

func checkinRouter(svc service.CheckInService) *gin.Engine {
	r := gin.New()
	NewCheckInHandler(svc).RegisterRoutes(r.Group("/api"))
	return r
}

func postCheckin(t *testing.T, r *gin.Engine, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/checkins", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCheckinRequiresAuth(t *testing.T) {
	r := checkinRouter(&stubCheckInService{})
	w := postCheckin(t, r, "", `{"qrCodeId":"TGCAAAAAA"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCheckinStatusMapping(t *testing.T) {
	token := makeToken(t, "staff")

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown code", service.ErrMemberNotFound, http.StatusNotFound},
		{"inactive", service.ErrInactiveMembership, http.StatusBadRequest},
		{"expired", service.ExpiredError{EndDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}, http.StatusBadRequest},
		{"duplicate day", service.ErrAlreadyCheckedInToday, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := checkinRouter(&stubCheckInService{createErr: tc.err})
			w := postCheckin(t, r, token, `{"qrCodeId":"TGCAAAAAA"}`)
			if w.Code != tc.want {
				t.Fatalf("status = %d, want %d", w.Code, tc.want)
			}
		})
	}
}

func TestCheckinExpiredMessageCarriesDate(t *testing.T) {
	token := makeToken(t, "staff")
	r := checkinRouter(&stubCheckInService{
		createErr: service.ExpiredError{EndDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	})

	w := postCheckin(t, r, token, `{"qrCodeId":"TGCAAAAAA"}`)
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.Contains(body.Error, "2026-03-01") {
		t.Fatalf("error %q missing end date", body.Error)
	}
}

func TestCheckinSuccess(t *testing.T) {
	token := makeToken(t, "admin")
	r := checkinRouter(&stubCheckInService{
		result: &service.CheckInResult{Member: model.MemberSummary{ID: 7, FullName: "Aziza"}},
	})

	w := postCheckin(t, r, token, `{"qrCodeId":"TGCAAAAAA"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", w.Code)
	}
}

func TestCheckinRejectsMissingCode(t *testing.T) {
	token := makeToken(t, "staff")
	r := checkinRouter(&stubCheckInService{})

	w := postCheckin(t, r, token, `{}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
