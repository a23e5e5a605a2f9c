package model

// Side names the leading player in a stat comparison.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideTie   Side = "tie"
)

// StatComparison is one row of a side-by-side view.
type StatComparison struct {
	Stat   string   `json:"stat"`
	Left   *float64 `json:"left,omitempty"`
	Right  *float64 `json:"right,omitempty"`
	Leader Side     `json:"leader,omitempty"`
}

type statSpec struct {
	name        string
	lowerIsBest bool
	get         func(PlayerSeasonRecord) *float64
}

func intStat(f func(PlayerSeasonRecord) *int) func(PlayerSeasonRecord) *float64 {
	return func(r PlayerSeasonRecord) *float64 {
		v := f(r)
		if v == nil {
			return nil
		}
		out := float64(*v)
		return &out
	}
}

func pctStat(f func(PlayerSeasonRecord) *float64) func(PlayerSeasonRecord) *float64 {
	return func(r PlayerSeasonRecord) *float64 { return Percent(f(r)) }
}

var comparedStats = []statSpec{
	{name: "games", get: intStat(func(r PlayerSeasonRecord) *int { return r.Games })},
	{name: "gamesStarted", get: intStat(func(r PlayerSeasonRecord) *int { return r.GamesStarted })},
	{name: "minutesPg", get: func(r PlayerSeasonRecord) *float64 { return r.MinutesPg }},
	{name: "points", get: intStat(func(r PlayerSeasonRecord) *int { return r.Points })},
	{name: "totalRb", get: intStat(func(r PlayerSeasonRecord) *int { return r.TotalRb })},
	{name: "offensiveRb", get: intStat(func(r PlayerSeasonRecord) *int { return r.OffensiveRb })},
	{name: "defensiveRb", get: intStat(func(r PlayerSeasonRecord) *int { return r.DefensiveRb })},
	{name: "assists", get: intStat(func(r PlayerSeasonRecord) *int { return r.Assists })},
	{name: "steals", get: intStat(func(r PlayerSeasonRecord) *int { return r.Steals })},
	{name: "blocks", get: intStat(func(r PlayerSeasonRecord) *int { return r.Blocks })},
	{name: "turnovers", lowerIsBest: true, get: intStat(func(r PlayerSeasonRecord) *int { return r.Turnovers })},
	{name: "personalFouls", lowerIsBest: true, get: intStat(func(r PlayerSeasonRecord) *int { return r.PersonalFouls })},
	{name: "fieldGoals", get: intStat(func(r PlayerSeasonRecord) *int { return r.FieldGoals })},
	{name: "fieldPercent", get: pctStat(func(r PlayerSeasonRecord) *float64 { return r.FieldPercent })},
	{name: "threeFg", get: intStat(func(r PlayerSeasonRecord) *int { return r.ThreeFg })},
	{name: "threePercent", get: pctStat(func(r PlayerSeasonRecord) *float64 { return r.ThreePercent })},
	{name: "twoPercent", get: pctStat(func(r PlayerSeasonRecord) *float64 { return r.TwoPercent })},
	{name: "effectFgPercent", get: pctStat(func(r PlayerSeasonRecord) *float64 { return r.EffectFgPercent })},
	{name: "ft", get: intStat(func(r PlayerSeasonRecord) *int { return r.Ft })},
	{name: "ftPercent", get: pctStat(func(r PlayerSeasonRecord) *float64 { return r.FtPercent })},
}

// Compare lines up two records stat by stat. Percentages are scaled to 0..100.
// A side with an absent value never leads.
func Compare(left, right PlayerSeasonRecord) []StatComparison {
	rows := make([]StatComparison, 0, len(comparedStats))
	for _, s := range comparedStats {
		l, r := s.get(left), s.get(right)
		rows = append(rows, StatComparison{
			Stat:   s.name,
			Left:   l,
			Right:  r,
			Leader: leader(l, r, s.lowerIsBest),
		})
	}
	return rows
}

func leader(l, r *float64, lowerIsBest bool) Side {
	switch {
	case l == nil && r == nil:
		return SideNone
	case r == nil:
		return SideLeft
	case l == nil:
		return SideRight
	case *l == *r:
		return SideTie
	case (*l > *r) != lowerIsBest:
		return SideLeft
	default:
		return SideRight
	}
}
