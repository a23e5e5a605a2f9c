// Package model contains the data shapes shared across layers.
// I keep it lean: records as the upstream returns them plus a few read-only helpers.
package model

import "sort"

// PlayerSeasonRecord is one player's season totals with one team.
// Everything except ID and PlayerName is optional because the upstream omits fields freely.
type PlayerSeasonRecord struct {
	ID         int     `json:"id"`
	PlayerName string  `json:"playerName"`
	PlayerID   *string `json:"playerId,omitempty"`
	Team       *string `json:"team,omitempty"`
	Season     *int    `json:"season,omitempty"`
	Position   *string `json:"position,omitempty"`
	Age        *int    `json:"age,omitempty"`

	Games         *int `json:"games,omitempty"`
	GamesStarted  *int `json:"gamesStarted,omitempty"`
	FieldGoals    *int `json:"fieldGoals,omitempty"`
	FieldAttempts *int `json:"fieldAttempts,omitempty"`
	ThreeFg       *int `json:"threeFg,omitempty"`
	ThreeAttempts *int `json:"threeAttempts,omitempty"`
	TwoFg         *int `json:"twoFg,omitempty"`
	TwoAttempts   *int `json:"twoAttempts,omitempty"`
	Ft            *int `json:"ft,omitempty"`
	FtAttempts    *int `json:"ftAttempts,omitempty"`
	OffensiveRb   *int `json:"offensiveRb,omitempty"`
	DefensiveRb   *int `json:"defensiveRb,omitempty"`
	TotalRb       *int `json:"totalRb,omitempty"`
	Assists       *int `json:"assists,omitempty"`
	Steals        *int `json:"steals,omitempty"`
	Blocks        *int `json:"blocks,omitempty"`
	Turnovers     *int `json:"turnovers,omitempty"`
	PersonalFouls *int `json:"personalFouls,omitempty"`
	Points        *int `json:"points,omitempty"`

	// Rate stats are fractions in [0,1]; use Percent for display.
	MinutesPg       *float64 `json:"minutesPg,omitempty"`
	FieldPercent    *float64 `json:"fieldPercent,omitempty"`
	ThreePercent    *float64 `json:"threePercent,omitempty"`
	TwoPercent      *float64 `json:"twoPercent,omitempty"`
	EffectFgPercent *float64 `json:"effectFgPercent,omitempty"`
	FtPercent       *float64 `json:"ftPercent,omitempty"`
}

// Percent converts an upstream fraction into a percentage. Absent stays absent.
func Percent(v *float64) *float64 {
	if v == nil {
		return nil
	}
	p := *v * 100
	return &p
}

// SeasonRangeResult maps every requested season to its record, or nil when the season had no data.
type SeasonRangeResult map[int]*PlayerSeasonRecord

// Years returns the requested seasons in ascending order.
func (r SeasonRangeResult) Years() []int {
	years := make([]int, 0, len(r))
	for y := range r {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Record returns the record for a season and whether the season was requested at all.
func (r SeasonRangeResult) Record(year int) (*PlayerSeasonRecord, bool) {
	rec, ok := r[year]
	return rec, ok
}

// Present counts seasons that resolved to a record.
func (r SeasonRangeResult) Present() int {
	n := 0
	for _, rec := range r {
		if rec != nil {
			n++
		}
	}
	return n
}
