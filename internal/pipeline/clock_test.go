package pipeline

import "testing"

func TestClockToMinutes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int
	}{
		{"morning 12h", "7:00 AM", 420},
		{"evening 12h", "11:30 PM", 1410},
		{"noon", "12:00 PM", 720},
		{"midnight", "12:00 AM", 0},
		{"24h format", "18:45", 1125},
		{"24h with seconds", "06:30:00", 390},
		{"no space before meridiem", "9:15PM", 1275},
		{"hour only", "6 AM", 360},
		{"lowercase meridiem", "7:00 am", 420},
		{"padded", "  7:00 AM  ", 420},
		{"empty falls back to default", "", DefaultClockMinutes},
		{"garbage falls back to default", "banana", DefaultClockMinutes},
		{"partial garbage falls back to default", "25:99", DefaultClockMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClockToMinutes(tt.input)
			if got != tt.want {
				t.Errorf("ClockToMinutes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
