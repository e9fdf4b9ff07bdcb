package membership

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestEvaluate(t *testing.T) {
	today := date(2025, time.March, 10)

	tests := []struct {
		name       string
		end        *time.Time
		wantStatus string
		wantDays   *int
	}{
		{"nil end date", nil, StatusNoEndDate, nil},
		{"ended yesterday", ptr(date(2025, time.March, 9)), StatusExpired, ptrInt(-1)},
		{"ends today", ptr(date(2025, time.March, 10)), StatusExpiringSoon, ptrInt(0)},
		{"ends at window edge", ptr(date(2025, time.March, 17)), StatusExpiringSoon, ptrInt(7)},
		{"ends past window", ptr(date(2025, time.March, 18)), StatusActive, ptrInt(8)},
		{"long expired", ptr(date(2024, time.December, 1)), StatusExpired, ptrInt(-99)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.end, today)
			if got.Status != tt.wantStatus {
				t.Fatalf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if (got.DaysRemaining == nil) != (tt.wantDays == nil) {
				t.Fatalf("daysRemaining = %v, want %v", got.DaysRemaining, tt.wantDays)
			}
			if got.DaysRemaining != nil && *got.DaysRemaining != *tt.wantDays {
				t.Fatalf("daysRemaining = %d, want %d", *got.DaysRemaining, *tt.wantDays)
			}
		})
	}
}

func TestEvaluateIgnoresTimeOfDay(t *testing.T) {
	today := time.Date(2025, time.March, 10, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, time.March, 11, 0, 1, 0, 0, time.UTC)

	got := Evaluate(&end, today)
	if got.DaysRemaining == nil || *got.DaysRemaining != 1 {
		t.Fatalf("daysRemaining = %v, want 1", got.DaysRemaining)
	}
	if got.Status != StatusExpiringSoon {
		t.Fatalf("status = %q, want %q", got.Status, StatusExpiringSoon)
	}
}

func TestSortPriority(t *testing.T) {
	order := []string{StatusNoEndDate, StatusExpired, StatusExpiringSoon, StatusActive}
	for i := 1; i < len(order); i++ {
		if SortPriority(order[i-1]) >= SortPriority(order[i]) {
			t.Fatalf("%s should sort before %s", order[i-1], order[i])
		}
	}
}

func ptr(t time.Time) *time.Time { return &t }
func ptrInt(n int) *int          { return &n }
