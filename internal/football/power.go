package football

import (
	"math"
	"strings"
)

// Same tags the store uses for a bet's favored side.
const (
	Home = "home"
	Away = "away"
)

// Power scores a team's current strength from its table row: points and goal
// difference weighted, plus 3 per recent win and 1 per recent draw.
func Power(st Standing) float64 {
	formScore := float64(strings.Count(st.Form, "W")*3 + strings.Count(st.Form, "D"))
	return float64(st.Points)*1.5 + float64(st.GoalsDiff)*1.2 + formScore
}

// Handicap derives the goal line and favored side from the two teams' power
// scores. Equal powers favor the away side (strict comparison).
func Handicap(home, away Standing) (stronger string, line float64) {
	homePower := Power(home)
	awayPower := Power(away)
	diff := math.Abs(homePower - awayPower)

	switch {
	case diff <= 10:
		line = 0
	case diff <= 25:
		line = 0.5
	case diff <= 45:
		line = 1
	case diff <= 70:
		line = 1.5
	default:
		line = 2
	}

	stronger = Away
	if homePower > awayPower {
		stronger = Home
	}
	return stronger, line
}

// RankHandicap is the fallback policy when only table positions are known.
// A lower rank number means a stronger team; equal ranks favor away, line 0.
func RankHandicap(homeRank, awayRank int) (stronger string, line float64) {
	diff := homeRank - awayRank
	stronger = Away
	if diff < 0 {
		stronger = Home
	}

	gap := diff
	if gap > 0 {
		gap = -gap
	}
	switch {
	case gap <= -10:
		line = 1.5
	case gap <= -5:
		line = 1
	case gap <= -2:
		line = 0.5
	}
	return stronger, line
}
