package service_test

import (
	"testing"

	"github.com/maxviazov/nba-totals/internal/service"
)

func TestIsValidSeason(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  bool
	}{
		{"Starting year", "2023", true},
		{"Two-year format", "2023-24", true},
		{"Century rollover", "1999-00", true},
		{"Leading and trailing space", " 2023-24 ", true},
		{"First season", "1947", true},
		{"Before first season", "1946", false},
		{"Non consecutive years", "2023-25", false},
		{"Long second year", "2023-2024", false},
		{"Invalid separator", "2023/24", false},
		{"Too short", "2023-2", false},
		{"Letters instead of numbers", "abcd-ef", false},
		{"Empty string", "", false},
		{"Only spaces", "   ", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := service.IsValidSeason(tc.input)
			if got != tc.want {
				t.Errorf("IsValidSeason(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSeasonReturnsStartingYear(t *testing.T) {
	for in, want := range map[string]int{"2024": 2024, "2024-25": 2024, "1999-00": 1999} {
		got, err := service.ParseSeason(in)
		if err != nil {
			t.Fatalf("ParseSeason(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseSeason(%q) = %d; want %d", in, got, want)
		}
	}
}
