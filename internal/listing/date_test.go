package listing

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want time.Time
	}{
		{
			name: "ISO date",
			text: "2025-10-14",
			want: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "ISO date with time",
			text: "2025-10-14 11:30",
			want: time.Date(2025, 10, 14, 11, 30, 0, 0, time.UTC),
		},
		{
			name: "boletin table format dd-mm-yyyy",
			text: "14-10-2025",
			want: time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "pdf format dd/mm/yyyy with time",
			text: "03/11/2025 10:00",
			want: time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC).Add(10 * time.Hour),
		},
		{
			name: "RFC3339",
			text: "2025-10-14T09:00:00Z",
			want: time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC),
		},
		{
			name: "whitespace trimmed",
			text: "  2025-01-02  ",
			want: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "empty",
			text: "",
			want: time.Time{},
		},
		{
			name: "garbage",
			text: "proximamente",
			want: time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.text)
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "date only",
			t:    time.Date(2025, 10, 14, 0, 0, 0, 0, time.UTC),
			want: "2025-10-14",
		},
		{
			name: "date with time",
			t:    time.Date(2025, 10, 14, 11, 30, 0, 0, time.UTC),
			want: "2025-10-14 11:30",
		},
		{
			name: "zero time",
			t:    time.Time{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDate(tt.t); got != tt.want {
				t.Errorf("FormatDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemateTime(t *testing.T) {
	l := &Listing{
		FechaPublicacion: "2025-10-01",
		FechaRemate:      "2025-10-20 12:00",
	}
	want := time.Date(2025, 10, 20, 12, 0, 0, 0, time.UTC)
	if got := l.RemateTime(); !got.Equal(want) {
		t.Errorf("RemateTime() = %v, want %v", got, want)
	}

	// Falls back to publication date when the auction date is missing.
	l = &Listing{FechaPublicacion: "2025-10-01"}
	want = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	if got := l.RemateTime(); !got.Equal(want) {
		t.Errorf("RemateTime() fallback = %v, want %v", got, want)
	}

	l = &Listing{FechaTexto: "por confirmar"}
	if got := l.RemateTime(); !got.IsZero() {
		t.Errorf("RemateTime() with no parseable date = %v, want zero", got)
	}
}
