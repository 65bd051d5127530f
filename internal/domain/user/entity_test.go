package user

import (
	"reflect"
	"testing"
)

func TestNormalizeWatchlist(t *testing.T) {
	cases := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil", nil, []string{}},
		{"plain", []string{"a", "b"}, []string{"a", "b"}},
		{"dupes keep first", []string{"a", "b", "a", "b"}, []string{"a", "b"}},
		{"blanks dropped", []string{" ", "a", "", "  b "}, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeWatchlist(tc.in); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("NormalizeWatchlist(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestOnWatchlist(t *testing.T) {
	u := User{Watchlist: []string{"of-1", "of-2"}}

	if !u.OnWatchlist("of-1") {
		t.Fatalf("of-1 should be on the watchlist")
	}
	if !u.OnWatchlist(" of-2 ") {
		t.Fatalf("lookup should trim the argument")
	}
	if u.OnWatchlist("of-9") {
		t.Fatalf("of-9 should not be on the watchlist")
	}
}
