package nbaapi

import "time"

const (
	defaultBaseURL     = "http://rest.nbaapi.com"
	queryPath          = "/api/PlayerDataTotals/query"
	defaultHTTPTimeout = 10 * time.Second
	defaultUserAgent   = "nba-totals/0.1"
	defaultMaxPages    = 20

	// RosterPageSize exceeds any full roster so one page covers a team season.
	RosterPageSize = 35
	// SearchPageSize is the default page size for name searches.
	SearchPageSize = 6
	// SeasonPageSize is the page size used when resolving one player's season.
	SeasonPageSize = 30
	// AllPagesPageSize is the page size used when walking every page of a name search.
	AllPagesPageSize = 30

	sortByPlayerName = "PlayerName"
	maxBodyBytes     = 4 << 20
	snippetBytes     = 256
)

// Call names used for logging and metrics labels.
const (
	callBySeasonTeam = "by_season_team"
	callByNamePaged  = "by_name_paged"
	callByNameSeason = "by_name_season"
	callPing         = "ping"
)
