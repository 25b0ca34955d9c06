package football

// Fixture is a single match as reported by the data provider.
type Fixture struct {
	ID        int
	Status    string // provider short code, "FT" once full time
	LeagueID  int
	Season    int
	HomeTeam  string
	AwayTeam  string
	HomeGoals int
	AwayGoals int
}

// Finished reports whether the fixture has a final score.
func (f *Fixture) Finished() bool {
	return f.Status == "FT"
}

// Standing is one team's row in a league table.
type Standing struct {
	Rank      int    `json:"rank"`
	Team      string `json:"team"`
	Points    int    `json:"points"`
	GoalsDiff int    `json:"goals_diff"`
	Form      string `json:"form"` // recent results as W/D/L letters, e.g. "WWDLW"
}

// FindTeam locates a team's table row by the provider's exact name.
func FindTeam(table []Standing, name string) (Standing, bool) {
	for _, st := range table {
		if st.Team == name {
			return st, true
		}
	}
	return Standing{}, false
}
