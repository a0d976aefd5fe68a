package util

import (
	"testing"
	"time"
)

func TestGetZeroTime(t *testing.T) {
	d := time.Date(2024, 5, 20, 18, 45, 30, 123, time.Local)
	zero := GetZeroTime(d)

	want := time.Date(2024, 5, 20, 0, 0, 0, 0, time.Local)
	if !zero.Equal(want) {
		t.Errorf("GetZeroTime = %v, want %v", zero, want)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"24h", 24 * time.Hour},
		{"30m", 30 * time.Minute},
		{"10s", 10 * time.Second},
		{"60", 60 * time.Second},
		{" 1d ", 24 * time.Hour},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseDuration("xd"); err == nil {
		t.Error("ParseDuration(\"xd\") should fail")
	}
}
