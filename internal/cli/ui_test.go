package cli

import (
	"strings"
	"testing"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name string
		ms   int64
		want string
	}{
		{"Milliseconds", 250, "250ms"},
		{"Seconds", 90_000, "1m30s"},
		{"WholeSeconds", 5_000, "5s"},
		{"WholeMinutes", 600_000, "10m"},
		{"HoursAndMinutes", 5_400_000, "1h30m"},
		{"WholeHours", 7_200_000, "2h"},
		{"Zero", 0, "0ms"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDuration(tt.ms); got != tt.want {
				t.Errorf("formatDuration(%d) = %q, want %q", tt.ms, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name string
		n    int64
		want string
	}{
		{"Zero", 0, "0 B"},
		{"Bytes", 512, "512 B"},
		{"Kibibytes", 2_560, "2.5 KiB"},
		{"Mebibytes", 1_258_291, "1.2 MiB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatBytes(tt.n); got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.n, got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := formatPercent(25.0); got != "25%" {
		t.Errorf("formatPercent(25) = %q, want 25%%", got)
	}
	if got := formatPercent(33.333); got != "33.3%" {
		t.Errorf("formatPercent(33.333) = %q, want 33.3%%", got)
	}
}

func TestRenderSpan(t *testing.T) {
	bar := renderSpan(0, 50, '#')
	if len([]rune(bar)) != barWidth {
		t.Fatalf("bar length = %d, want %d", len([]rune(bar)), barWidth)
	}
	if got := strings.Count(bar, "#"); got != barWidth/2 {
		t.Errorf("filled cells = %d, want %d", got, barWidth/2)
	}
	if !strings.HasSuffix(bar, "·") {
		t.Error("second half should be empty cells")
	}
}

func TestRenderSpanTinySegmentVisible(t *testing.T) {
	// A nonzero width always renders at least one cell.
	bar := renderSpan(0, 0.1, '#')
	if strings.Count(bar, "#") != 1 {
		t.Errorf("tiny segment should render exactly one cell, got %q", bar)
	}
}

func TestRenderSpanOverflowClamps(t *testing.T) {
	// Overflowing positions clamp to the visible bar rather than panic.
	bar := renderSpan(150, 50, '#')
	if len([]rune(bar)) != barWidth {
		t.Errorf("overflow bar length = %d, want %d", len([]rune(bar)), barWidth)
	}
	if strings.Contains(bar, "#") {
		t.Errorf("span past the bar end should render no cells, got %q", bar)
	}
}
