package common

import "testing"

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		name                        string
		number, perPage             int
		wantPage, wantLim, wantOff  int
	}{
		{"defaults", 0, 0, 1, 20, 0},
		{"negative page", -3, 10, 1, 10, 0},
		{"second page", 2, 25, 2, 25, 25},
		{"over max clamped", 1, 500, 1, 100, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, lim, off := NormalizePage(tc.number, tc.perPage, 20, 100)
			if page != tc.wantPage || lim != tc.wantLim || off != tc.wantOff {
				t.Fatalf("NormalizePage(%d, %d) = %d/%d/%d, want %d/%d/%d",
					tc.number, tc.perPage, page, lim, off, tc.wantPage, tc.wantLim, tc.wantOff)
			}
		})
	}
}

func TestComputeTotalPages(t *testing.T) {
	cases := []struct {
		total, perPage, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 0, 0},
	}
	for _, tc := range cases {
		if got := ComputeTotalPages(tc.total, tc.perPage); got != tc.want {
			t.Fatalf("ComputeTotalPages(%d, %d) = %d, want %d", tc.total, tc.perPage, got, tc.want)
		}
	}
}

func TestTrimPtr(t *testing.T) {
	if got := TrimPtr(nil); got != nil {
		t.Fatalf("TrimPtr(nil) = %v, want nil", got)
	}
	empty := "   "
	if got := TrimPtr(&empty); got != nil {
		t.Fatalf("TrimPtr(blank) = %v, want nil", got)
	}
	s := "  hello "
	got := TrimPtr(&s)
	if got == nil || *got != "hello" {
		t.Fatalf("TrimPtr = %v, want hello", got)
	}
}
