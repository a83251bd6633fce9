package utils

import "testing"

func TestNormalizeClockTime(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"9:00", "09:00:00", false},
		{"09:30", "09:30:00", false},
		{"14:30:15", "14:30:15", false},
		{" 08:00 ", "08:00:00", false},
		{"24:00", "", true},
		{"12:60", "", true},
		{"12:00:61", "", true},
		{"noon", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeClockTime(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeClockTime(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("NormalizeClockTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestClockTimeParts(t *testing.T) {
	h, m, s, err := ClockTimeParts("14:30:15")
	if err != nil {
		t.Fatalf("ClockTimeParts() error = %v", err)
	}
	if h != 14 || m != 30 || s != 15 {
		t.Errorf("ClockTimeParts() = %d:%d:%d, want 14:30:15", h, m, s)
	}

	if _, _, _, err := ClockTimeParts("bad"); err == nil {
		t.Error("ClockTimeParts() error = nil, want error")
	}
}
