package game

import "strings"

// Team holds display metadata for one NFL franchise.
type Team struct {
	Abbr     string `json:"abbr"`
	Name     string `json:"name"`
	Division string `json:"division"`
}

// Teams is the franchise registry keyed by current abbreviation.
var Teams = map[string]Team{
	"ARI": {"ARI", "Arizona Cardinals", "NFC West"},
	"ATL": {"ATL", "Atlanta Falcons", "NFC South"},
	"BAL": {"BAL", "Baltimore Ravens", "AFC North"},
	"BUF": {"BUF", "Buffalo Bills", "AFC East"},
	"CAR": {"CAR", "Carolina Panthers", "NFC South"},
	"CHI": {"CHI", "Chicago Bears", "NFC North"},
	"CIN": {"CIN", "Cincinnati Bengals", "AFC North"},
	"CLE": {"CLE", "Cleveland Browns", "AFC North"},
	"DAL": {"DAL", "Dallas Cowboys", "NFC East"},
	"DEN": {"DEN", "Denver Broncos", "AFC West"},
	"DET": {"DET", "Detroit Lions", "NFC North"},
	"GB":  {"GB", "Green Bay Packers", "NFC North"},
	"HOU": {"HOU", "Houston Texans", "AFC South"},
	"IND": {"IND", "Indianapolis Colts", "AFC South"},
	"JAX": {"JAX", "Jacksonville Jaguars", "AFC South"},
	"KC":  {"KC", "Kansas City Chiefs", "AFC West"},
	"LAC": {"LAC", "Los Angeles Chargers", "AFC West"},
	"LAR": {"LAR", "Los Angeles Rams", "NFC West"},
	"LV":  {"LV", "Las Vegas Raiders", "AFC West"},
	"MIA": {"MIA", "Miami Dolphins", "AFC East"},
	"MIN": {"MIN", "Minnesota Vikings", "NFC North"},
	"NE":  {"NE", "New England Patriots", "AFC East"},
	"NO":  {"NO", "New Orleans Saints", "NFC South"},
	"NYG": {"NYG", "New York Giants", "NFC East"},
	"NYJ": {"NYJ", "New York Jets", "AFC East"},
	"PHI": {"PHI", "Philadelphia Eagles", "NFC East"},
	"PIT": {"PIT", "Pittsburgh Steelers", "AFC North"},
	"SEA": {"SEA", "Seattle Seahawks", "NFC West"},
	"SF":  {"SF", "San Francisco 49ers", "NFC West"},
	"TB":  {"TB", "Tampa Bay Buccaneers", "NFC South"},
	"TEN": {"TEN", "Tennessee Titans", "AFC South"},
	"WAS": {"WAS", "Washington Commanders", "NFC East"},
}

// Divisions lists all eight divisions in criteria order.
var Divisions = []string{
	"AFC East", "AFC North", "AFC South", "AFC West",
	"NFC East", "NFC North", "NFC South", "NFC West",
}

// Conferences lists both conferences.
var Conferences = []string{"AFC", "NFC"}

// historicalAbbrs maps abbreviations that appear in older season data to the
// current franchise abbreviation (relocations and source quirks).
var historicalAbbrs = map[string]string{
	"OAK": "LV",  // Oakland Raiders
	"SD":  "LAC", // San Diego Chargers
	"STL": "LAR", // St. Louis Rams
	"PHO": "ARI", // Phoenix Cardinals
	"RAI": "LV",
	"RAM": "LAR",
	"LA":  "LAR",
}

// teamVariants maps a current abbreviation to every abbreviation the dataset
// may use for that franchise.
var teamVariants = map[string][]string{
	"LV":  {"LV", "OAK", "RAI"},
	"LAC": {"LAC", "SD"},
	"LAR": {"LAR", "LA", "STL", "RAM"},
	"ARI": {"ARI", "PHO"},
}

// NormalizeTeam resolves a dataset abbreviation to the current franchise
// abbreviation.
func NormalizeTeam(abbr string) string {
	abbr = strings.ToUpper(strings.TrimSpace(abbr))
	if cur, ok := historicalAbbrs[abbr]; ok {
		return cur
	}
	return abbr
}

// TeamVariants returns every dataset abbreviation for a franchise, the
// current abbreviation included.
func TeamVariants(abbr string) []string {
	if v, ok := teamVariants[abbr]; ok {
		return v
	}
	return []string{abbr}
}

// TeamDivision returns the division of the franchise owning the given
// (possibly historical) abbreviation, or "" when unknown.
func TeamDivision(abbr string) string {
	t, ok := Teams[NormalizeTeam(abbr)]
	if !ok {
		return ""
	}
	return t.Division
}

// TeamConference returns "AFC" or "NFC" for a (possibly historical)
// abbreviation, or "" when unknown.
func TeamConference(abbr string) string {
	div := TeamDivision(abbr)
	if div == "" {
		return ""
	}
	return strings.Fields(div)[0]
}

// TeamsInDivision returns current abbreviations of all franchises in a
// division.
func TeamsInDivision(division string) []string {
	var out []string
	for abbr, t := range Teams {
		if t.Division == division {
			out = append(out, abbr)
		}
	}
	return out
}

// TeamsInConference returns current abbreviations of all franchises in a
// conference.
func TeamsInConference(conference string) []string {
	var out []string
	for abbr, t := range Teams {
		if strings.HasPrefix(t.Division, conference) {
			out = append(out, abbr)
		}
	}
	return out
}
