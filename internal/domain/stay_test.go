package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStay_Overlaps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a    Stay
		b    Stay
		want bool
	}{
		{
			name: "partial overlap",
			a:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 5)},
			b:    Stay{CheckIn: date(2025, 2, 4), CheckOut: date(2025, 2, 8)},
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 5)},
			b:    Stay{CheckIn: date(2025, 2, 5), CheckOut: date(2025, 2, 8)},
			want: false,
		},
		{
			name: "contained range overlaps",
			a:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 10)},
			b:    Stay{CheckIn: date(2025, 2, 3), CheckOut: date(2025, 2, 4)},
			want: true,
		},
		{
			name: "identical ranges overlap",
			a:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 3)},
			b:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 3)},
			want: true,
		},
		{
			name: "disjoint ranges",
			a:    Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 3)},
			b:    Stay{CheckIn: date(2025, 2, 10), CheckOut: date(2025, 2, 12)},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			// Intersection is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Fatalf("Overlaps(%v, %v) = %v, want %v", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestStay_Nights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		stay Stay
		want int
	}{
		{
			name: "four nights",
			stay: Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 5)},
			want: 4,
		},
		{
			name: "single night",
			stay: Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 2)},
			want: 1,
		},
		{
			name: "partial day rounds up",
			stay: Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 2).Add(6 * time.Hour)},
			want: 2,
		},
		{
			name: "minimum one night",
			stay: Stay{CheckIn: date(2025, 2, 1), CheckOut: date(2025, 2, 1)},
			want: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.stay.Nights(); got != tt.want {
				t.Fatalf("Nights() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStay_Validate(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 2, 10, 15, 30, 0, 0, time.UTC)

	t.Run("valid future stay", func(t *testing.T) {
		t.Parallel()
		stay := Stay{CheckIn: date(2025, 2, 11), CheckOut: date(2025, 2, 14)}
		if err := stay.Validate(now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("check-in today is allowed", func(t *testing.T) {
		t.Parallel()
		stay := Stay{CheckIn: date(2025, 2, 10), CheckOut: date(2025, 2, 12)}
		if err := stay.Validate(now); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("missing dates are a validation error", func(t *testing.T) {
		t.Parallel()
		err := Stay{CheckIn: date(2025, 2, 11)}.Validate(now)
		if !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("reversed range is a conflict", func(t *testing.T) {
		t.Parallel()
		stay := Stay{CheckIn: date(2025, 2, 14), CheckOut: date(2025, 2, 11)}
		err := stay.Validate(now)
		if !IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("past check-in is a conflict", func(t *testing.T) {
		t.Parallel()
		stay := Stay{CheckIn: date(2025, 2, 9), CheckOut: date(2025, 2, 12)}
		err := stay.Validate(now)
		if !IsConflict(err) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})
}
