// Package session keeps the view state for interactive front ends.
//
// Every screen region is a slice of State with its own generation number. A request bumps the
// generation of its slice and only the result carrying that same generation may land; anything
// older is dropped. This keeps a slow response from overwriting the answer to a newer request.
package session

import (
	"github.com/maxviazov/nba-totals/internal/model"
	"github.com/maxviazov/nba-totals/internal/nbaapi"
	"github.com/maxviazov/nba-totals/internal/service"
)

// Slice names an independently loaded region of State.
type Slice string

const (
	SliceRoster  Slice = "roster"
	SliceSearch  Slice = "search"
	SliceRange   Slice = "range"
	SliceCompare Slice = "compare"
)

type RosterView struct {
	Generation uint64
	Loading    bool
	Err        error
	Season     int
	Team       string
	Records    []model.PlayerSeasonRecord
}

type SearchView struct {
	Generation uint64
	Loading    bool
	Err        error
	Name       string
	Page       int
	PageSize   int
	Records    []model.PlayerSeasonRecord
	NoMatch    bool
}

type RangeView struct {
	Generation uint64
	Loading    bool
	Err        error
	Name       string
	From       int
	To         int
	Result     model.SeasonRangeResult
}

type CompareView struct {
	Generation uint64
	Loading    bool
	Err        error
	Season     int
	Left       string
	Right      string
	Result     *service.Comparison
}

// State is a snapshot. Reduce returns a new value and never writes through the old one.
type State struct {
	Roster  RosterView
	Search  SearchView
	Range   RangeView
	Compare CompareView
}

func (s State) generation(sl Slice) uint64 {
	switch sl {
	case SliceRoster:
		return s.Roster.Generation
	case SliceSearch:
		return s.Search.Generation
	case SliceRange:
		return s.Range.Generation
	case SliceCompare:
		return s.Compare.Generation
	}
	return 0
}

// Msg is a state transition. The set is closed: requests open a generation, results settle it.
type Msg interface {
	meta() (sl Slice, gen uint64, result bool)
}

type RosterRequested struct {
	Gen    uint64
	Season int
	Team   string
}

type RosterLoaded struct {
	Gen     uint64
	Records []model.PlayerSeasonRecord
	Err     error
}

type SearchRequested struct {
	Gen      uint64
	Name     string
	Page     int
	PageSize int
}

type SearchLoaded struct {
	Gen  uint64
	Page service.SearchPage
	Err  error
}

type RangeRequested struct {
	Gen  uint64
	Name string
	From int
	To   int
}

type RangeLoaded struct {
	Gen    uint64
	Result model.SeasonRangeResult
	Err    error
}

type CompareRequested struct {
	Gen    uint64
	Season int
	Left   string
	Right  string
}

type CompareLoaded struct {
	Gen    uint64
	Result *service.Comparison
	Err    error
}

func (m RosterRequested) meta() (Slice, uint64, bool)  { return SliceRoster, m.Gen, false }
func (m RosterLoaded) meta() (Slice, uint64, bool)     { return SliceRoster, m.Gen, true }
func (m SearchRequested) meta() (Slice, uint64, bool)  { return SliceSearch, m.Gen, false }
func (m SearchLoaded) meta() (Slice, uint64, bool)     { return SliceSearch, m.Gen, true }
func (m RangeRequested) meta() (Slice, uint64, bool)   { return SliceRange, m.Gen, false }
func (m RangeLoaded) meta() (Slice, uint64, bool)      { return SliceRange, m.Gen, true }
func (m CompareRequested) meta() (Slice, uint64, bool) { return SliceCompare, m.Gen, false }
func (m CompareLoaded) meta() (Slice, uint64, bool)    { return SliceCompare, m.Gen, true }

// Accepts reports whether msg is current for s. A request must be newer than what the slice
// holds; a result must match the slice's generation exactly.
func Accepts(s State, msg Msg) bool {
	sl, gen, result := msg.meta()
	cur := s.generation(sl)
	if result {
		return gen == cur
	}
	return gen > cur
}

// Reduce applies msg to s. Messages that are not current leave s unchanged.
func Reduce(s State, msg Msg) State {
	if !Accepts(s, msg) {
		return s
	}
	switch m := msg.(type) {
	case RosterRequested:
		s.Roster = RosterView{Generation: m.Gen, Loading: true, Season: m.Season, Team: m.Team}
	case RosterLoaded:
		s.Roster.Loading = false
		s.Roster.Records = m.Records
		s.Roster.Err = m.Err
	case SearchRequested:
		s.Search = SearchView{Generation: m.Gen, Loading: true, Name: m.Name, Page: m.Page, PageSize: m.PageSize}
	case SearchLoaded:
		s.Search.Loading = false
		switch {
		case nbaapi.IsNotFound(m.Err):
			s.Search.Records = []model.PlayerSeasonRecord{}
			s.Search.NoMatch = true
		case m.Err != nil:
			s.Search.Err = m.Err
		default:
			s.Search.Records = m.Page.Records
			s.Search.NoMatch = m.Page.NoMatch
		}
	case RangeRequested:
		s.Range = RangeView{Generation: m.Gen, Loading: true, Name: m.Name, From: m.From, To: m.To}
	case RangeLoaded:
		s.Range.Loading = false
		s.Range.Result = m.Result
		s.Range.Err = m.Err
	case CompareRequested:
		s.Compare = CompareView{Generation: m.Gen, Loading: true, Season: m.Season, Left: m.Left, Right: m.Right}
	case CompareLoaded:
		s.Compare.Loading = false
		s.Compare.Result = m.Result
		s.Compare.Err = m.Err
	}
	return s
}
