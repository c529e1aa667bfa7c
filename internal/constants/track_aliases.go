package constants

import "strings"

// trackAliases groups the names the simulator and the league track catalog
// use for the same circuit. Lookup is symmetric: any name in a group expands
// to every other name in that group.
var trackAliases = [][]string{
	{"Red Bull Ring", "Austria", "Spielberg"},
	{"Silverstone", "Great Britain", "Britain"},
	{"Monza", "Italy"},
	{"Spa-Francorchamps", "Spa", "Belgium"},
	{"Circuit de Barcelona-Catalunya", "Catalunya", "Barcelona", "Spain"},
	{"Hungaroring", "Hungary", "Budapest"},
	{"Zandvoort", "Netherlands"},
	{"Imola", "Emilia Romagna"},
	{"Paul Ricard", "France", "Le Castellet"},
	{"Sochi", "Russia"},
	{"Suzuka", "Japan"},
	{"Circuit of the Americas", "COTA", "Austin", "USA", "Texas"},
	{"Interlagos", "Brazil", "Sao Paulo"},
	{"Yas Marina", "Abu Dhabi"},
	{"Albert Park", "Melbourne", "Australia"},
	{"Sakhir", "Bahrain"},
	{"Shanghai", "China"},
	{"Baku", "Azerbaijan"},
	{"Circuit Gilles Villeneuve", "Montreal", "Canada"},
	{"Monaco", "Monte Carlo"},
	{"Marina Bay", "Singapore"},
	{"Autodromo Hermanos Rodriguez", "Mexico", "Mexico City"},
	{"Jeddah", "Saudi Arabia"},
	{"Portimao", "Portugal", "Algarve"},
	{"Hanoi", "Vietnam"},
}

var aliasIndex map[string][]string

func init() {
	aliasIndex = make(map[string][]string)
	for _, group := range trackAliases {
		for _, name := range group {
			aliasIndex[NormalizeTrackName(name)] = group
		}
	}
}

// NormalizeTrackName lowercases and trims a free-text track name so that
// catalog lookups are case and whitespace insensitive.
func NormalizeTrackName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// TrackAliases returns every known name for the given track, the given name
// included, all normalized. Unknown tracks expand to just themselves.
func TrackAliases(name string) []string {
	norm := NormalizeTrackName(name)
	group, ok := aliasIndex[norm]
	if !ok {
		return []string{norm}
	}
	out := make([]string, 0, len(group))
	seen := map[string]bool{}
	for _, n := range group {
		nn := NormalizeTrackName(n)
		if !seen[nn] {
			seen[nn] = true
			out = append(out, nn)
		}
	}
	return out
}
