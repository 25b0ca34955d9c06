package football

import "testing"

func TestPowerFormScore(t *testing.T) {
	// Only the form contributes: 2 wins and 1 draw = 7.
	st := Standing{Form: "WWDLL"}
	if got := Power(st); got != 7 {
		t.Fatalf("Power=%v want=7", got)
	}
}

func TestPowerFullFormula(t *testing.T) {
	st := Standing{Points: 40, GoalsDiff: 10, Form: "WWDLL"}
	want := 40*1.5 + 10*1.2 + 7.0
	if got := Power(st); got != want {
		t.Fatalf("Power=%v want=%v", got, want)
	}
}

func TestPowerMalformedForm(t *testing.T) {
	st := Standing{Points: 10, Form: "??X"}
	if got := Power(st); got != 15 {
		t.Fatalf("Power=%v want=15", got)
	}
}

func TestHandicapTiers(t *testing.T) {
	cases := []struct {
		homePoints, awayPoints int
		wantStronger           string
		wantLine               float64
	}{
		// Power is points*1.5, so point gaps map directly to power gaps.
		{20, 20, Away, 0},   // diff 0
		{24, 20, Home, 0},   // diff 6
		{30, 20, Home, 0.5}, // diff 15
		{40, 20, Home, 1},   // diff 30
		{60, 20, Home, 1.5}, // diff 60
		{80, 20, Home, 2},   // diff 90
		{20, 30, Away, 0.5},
	}

	for _, tc := range cases {
		stronger, line := Handicap(Standing{Points: tc.homePoints}, Standing{Points: tc.awayPoints})
		if stronger != tc.wantStronger || line != tc.wantLine {
			t.Fatalf("Handicap(%d,%d)=(%s,%v) want=(%s,%v)",
				tc.homePoints, tc.awayPoints, stronger, line, tc.wantStronger, tc.wantLine)
		}
	}
}

func TestHandicapEqualPowersFavorsAway(t *testing.T) {
	home := Standing{Points: 50, GoalsDiff: 5, Form: "WWW"}
	away := Standing{Points: 50, GoalsDiff: 5, Form: "WWW"}
	stronger, line := Handicap(home, away)
	if stronger != Away {
		t.Fatalf("stronger=%s want=%s", stronger, Away)
	}
	if line != 0 {
		t.Fatalf("line=%v want=0", line)
	}
}

func TestRankHandicap(t *testing.T) {
	cases := []struct {
		homeRank, awayRank int
		wantStronger       string
		wantLine           float64
	}{
		{1, 15, Home, 1.5},
		{2, 8, Home, 1},
		{3, 6, Home, 0.5},
		{4, 5, Home, 0},
		{5, 5, Away, 0},
		{15, 1, Away, 1.5},
		{8, 2, Away, 1},
		{6, 3, Away, 0.5},
		{5, 4, Away, 0},
	}

	for _, tc := range cases {
		stronger, line := RankHandicap(tc.homeRank, tc.awayRank)
		if stronger != tc.wantStronger || line != tc.wantLine {
			t.Fatalf("RankHandicap(%d,%d)=(%s,%v) want=(%s,%v)",
				tc.homeRank, tc.awayRank, stronger, line, tc.wantStronger, tc.wantLine)
		}
	}
}

func TestFindTeamExactNameOnly(t *testing.T) {
	table := []Standing{{Team: "Arsenal"}, {Team: "Chelsea"}}

	if _, ok := FindTeam(table, "Chelsea"); !ok {
		t.Fatal("expected exact match to be found")
	}
	if _, ok := FindTeam(table, "chelsea"); ok {
		t.Fatal("lookup must be case sensitive, provider naming is authoritative")
	}
}
