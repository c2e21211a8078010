package viewmodel

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestFormatKST(t *testing.T) {
	utc := time.Date(2026, 1, 31, 18, 5, 0, 0, time.UTC)
	if got := FormatKST(utc); got != "2026-02-01 03:05" {
		t.Errorf("FormatKST() = %q, want %q", got, "2026-02-01 03:05")
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 3, 9, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		loc  *time.Location
		want string
	}{
		{"nil means KST", nil, "2026.03.10"},
		{"utc", time.UTC, "2026.03.09"},
		{"fixed offset", time.FixedZone("PST", -8*60*60), "2026.03.09"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(ts, tt.loc); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 5, 20, 12, 0, 0, 0, KST)

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"future", now.Add(time.Minute), "방금 전"},
		{"seconds", now.Add(-30 * time.Second), "방금 전"},
		{"minutes", now.Add(-5 * time.Minute), "5분 전"},
		{"hours", now.Add(-3*time.Hour - 10*time.Minute), "3시간 전"},
		{"days", now.Add(-2 * 24 * time.Hour), "2일 전"},
		{"over a week", now.Add(-8 * 24 * time.Hour), "2026.05.12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeTime(tt.t, now); got != tt.want {
				t.Errorf("RelativeTime() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(CartItem{Product: Product{ID: "p1", Price: 12000}, Quantity: 2})
	if err != nil {
		t.Fatal(err)
	}
	for _, field := range []string{`"product"`, `"quantity":2`, `"price":12000`, `"reviewCount"`} {
		if !strings.Contains(string(data), field) {
			t.Errorf("marshalled CartItem %s missing %s", data, field)
		}
	}
	if strings.Contains(string(data), "discountPrice") {
		t.Errorf("nil discountPrice should be omitted: %s", data)
	}
}
