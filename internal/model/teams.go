package model

// Team is a franchise entry for team pickers.
type Team struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Teams lists the current franchises by upstream code, alphabetically.
// Historical codes (SEA, NJN, ...) are still accepted by the upstream; they are just not offered here.
var Teams = []Team{
	{Code: "ATL", Name: "Atlanta Hawks"},
	{Code: "BOS", Name: "Boston Celtics"},
	{Code: "BRK", Name: "Brooklyn Nets"},
	{Code: "CHI", Name: "Chicago Bulls"},
	{Code: "CHO", Name: "Charlotte Hornets"},
	{Code: "CLE", Name: "Cleveland Cavaliers"},
	{Code: "DAL", Name: "Dallas Mavericks"},
	{Code: "DEN", Name: "Denver Nuggets"},
	{Code: "DET", Name: "Detroit Pistons"},
	{Code: "GSW", Name: "Golden State Warriors"},
	{Code: "HOU", Name: "Houston Rockets"},
	{Code: "IND", Name: "Indiana Pacers"},
	{Code: "LAC", Name: "Los Angeles Clippers"},
	{Code: "LAL", Name: "Los Angeles Lakers"},
	{Code: "MEM", Name: "Memphis Grizzlies"},
	{Code: "MIA", Name: "Miami Heat"},
	{Code: "MIL", Name: "Milwaukee Bucks"},
	{Code: "MIN", Name: "Minnesota Timberwolves"},
	{Code: "NOP", Name: "New Orleans Pelicans"},
	{Code: "NYK", Name: "New York Knicks"},
	{Code: "OKC", Name: "Oklahoma City Thunder"},
	{Code: "ORL", Name: "Orlando Magic"},
	{Code: "PHI", Name: "Philadelphia 76ers"},
	{Code: "PHO", Name: "Phoenix Suns"},
	{Code: "POR", Name: "Portland Trail Blazers"},
	{Code: "SAC", Name: "Sacramento Kings"},
	{Code: "SAS", Name: "San Antonio Spurs"},
	{Code: "TOR", Name: "Toronto Raptors"},
	{Code: "UTA", Name: "Utah Jazz"},
	{Code: "WAS", Name: "Washington Wizards"},
}
