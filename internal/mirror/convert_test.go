package mirror

import (
	"encoding/base64"
	"math"
	"strings"
	"testing"
	"time"
)

func TestConvertRowDropsNils(t *testing.T) {
	out := ConvertRow(map[string]interface{}{
		"full_name": "Dilnoza",
		"gym_end":   nil,
	})
	if _, ok := out["gym_end"]; ok {
		t.Fatal("nil field should be omitted")
	}
	if out["full_name"] != "Dilnoza" {
		t.Fatalf("full_name = %v", out["full_name"])
	}
}

func TestConvertRowParsesDates(t *testing.T) {
	out := ConvertRow(map[string]interface{}{
		"join_date": "2025-03-10",
		"date":      "2025-03-10T08:30:00",
		"note":      "paid 2025-03-10 in cash",
		"phone":     "+998901234567",
	})

	if _, ok := out["join_date"].(time.Time); !ok {
		t.Fatalf("join_date = %T, want time.Time", out["join_date"])
	}
	if _, ok := out["date"].(time.Time); !ok {
		t.Fatalf("date = %T, want time.Time", out["date"])
	}
	// Only strings that start with a date shape convert.
	if _, ok := out["note"].(string); !ok {
		t.Fatalf("note = %T, want string", out["note"])
	}
	if out["phone"] != "+998901234567" {
		t.Fatalf("phone = %v", out["phone"])
	}
}

func TestConvertRowDropsOversizedStrings(t *testing.T) {
	big := strings.Repeat("a", MaxFieldBytes+1)
	out := ConvertRow(map[string]interface{}{
		"photo": big,
		"name":  "ok",
	})
	if _, ok := out["photo"]; ok {
		t.Fatal("oversized string should be dropped")
	}
	if out["name"] != "ok" {
		t.Fatalf("name = %v", out["name"])
	}
}

func TestConvertRowDropsNonFiniteNumbers(t *testing.T) {
	out := ConvertRow(map[string]interface{}{
		"a": math.NaN(),
		"b": math.Inf(1),
		"c": 3.5,
	})
	if _, ok := out["a"]; ok {
		t.Fatal("NaN should be dropped")
	}
	if _, ok := out["b"]; ok {
		t.Fatal("Inf should be dropped")
	}
	if out["c"] != 3.5 {
		t.Fatalf("c = %v", out["c"])
	}
}

func TestConvertRowEncodesBytes(t *testing.T) {
	out := ConvertRow(map[string]interface{}{"blob": []byte{1, 2, 3}})
	want := base64.StdEncoding.EncodeToString([]byte{1, 2, 3})
	if out["blob"] != want {
		t.Fatalf("blob = %v, want %v", out["blob"], want)
	}
}
