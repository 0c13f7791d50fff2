package leaderboard

import (
	"encoding/json"
	"reflect"
	"testing"
)

func pts(v float64) *Points {
	p := Points(v)
	return &p
}

func roster(user string, score float64, tank, d1, d2, s1, s2 string) Roster {
	return Roster{Username: user, Score: pts(score), Tank: tank, DPSOne: d1, DPSTwo: d2, SupportOne: s1, SupportTwo: s2}
}

func TestPointsAcceptsNumbersAndStrings(t *testing.T) {
	var rs []Roster
	body := `[{"username":"a","score":12.5},{"username":"b","score":"7"},{"username":"c","score":null},{"username":"d"}]`
	if err := json.Unmarshal([]byte(body), &rs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(*rs[0].Score) != 12.5 || float64(*rs[1].Score) != 7 {
		t.Fatalf("unexpected scores %v %v", *rs[0].Score, *rs[1].Score)
	}
	if rs[3].Score != nil {
		t.Fatalf("missing score must stay nil")
	}
	if err := json.Unmarshal([]byte(`[{"score":"abc"}]`), &rs); err == nil {
		t.Fatal("expected error for non numeric score")
	}
}

func TestSortGameweeks(t *testing.T) {
	got := SortGameweeks([]string{"playoffs_week2", "week10", "week2", "Playoffs_week1", "week1"})
	want := []string{"week1", "week2", "week10", "Playoffs_week1", "playoffs_week2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if Stage("playoffs_week2") != "Stage 2 Playoffs" || Stage("week3") != "Stage 2 Regular Season" {
		t.Fatal("unexpected stage mapping")
	}
}

func TestTransfers(t *testing.T) {
	prev := []Roster{
		roster("ana", 10, "T1", "D1", "D2", "S1", "S2"),
		roster("bob", 8, "T1", "D1", "D3", "S1", "S2"),
	}
	cur := []Roster{
		roster("ana", 20, "T2", "D1", "D2", "S1", "S2"), // T1 -> T2
		roster("bob", 15, "T1", "D1", "D3", "S1", "S2"), // sin cambios
		roster("cid", 5, "T1", "D1", "D2", "S1", "S2"),  // nuevo
	}
	tr, existing := Transfers(cur, prev)
	if existing != 2 {
		t.Fatalf("expected 2 existing users, got %d", existing)
	}
	if tr["T2"] == nil || tr["T2"].In != 1 || tr["T1"] == nil || tr["T1"].Out != 1 {
		t.Fatalf("unexpected transfers %+v", tr)
	}
	if _, ok := tr["D1"]; ok {
		t.Fatal("untouched players must not appear")
	}
}

func TestFrequency(t *testing.T) {
	rs := []Roster{
		roster("ana", 1, "T1", "D1", "D2", "S1", ""),
		roster("bob", 1, "T1", "D1", "D3", "S1", "Unknown"),
	}
	tr := map[string]*Transfer{"D3": {In: 1}}
	got := Frequency(rs, tr, 1)

	if got[0].Name != "D1" || got[0].Count != 2 || got[0].Percentage != 100 || got[0].Role != "dps" {
		t.Fatalf("unexpected first pick %+v", got[0])
	}
	names := []string{}
	for _, p := range got {
		names = append(names, p.Name)
	}
	want := []string{"D1", "S1", "T1", "D2", "D3"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("expected order %v, got %v", want, names)
	}
	d3 := got[4]
	if d3.TransferredIn != 1 || d3.NetTransfers != 1 || d3.TransferInPct != 100 || d3.Percentage != 50 {
		t.Fatalf("unexpected D3 %+v", d3)
	}
}

func TestBuildLeaderboard(t *testing.T) {
	prev := []Roster{
		roster("ana", 30, "T1", "D1", "D2", "S1", "S2"),
		roster("bob", 40, "T1", "D1", "D2", "S1", "S2"),
	}
	cur := []Roster{
		roster("ana", 55, "T2", "D1", "D2", "S1", "S2"),
		roster("bob", 50, "T1", "D1", "D2", "S1", "S2"),
		roster("cid", 12.25, "T1", "", "D2", "S1", "S2"),
		{Username: "ghost"},
	}
	board := Build(cur, prev)
	if len(board) != 3 {
		t.Fatalf("expected rosters without score to be skipped, got %d", len(board))
	}

	ana := board[0]
	if ana.Username != "ana" || ana.WeeklyPoints != 25 || ana.WeeklyPosition != 1 {
		t.Fatalf("unexpected ana %+v", ana)
	}
	if ana.CurrentOverallPosition != 1 || *ana.PreviousOverallPosition != 2 || ana.OverallPositionChange != 1 {
		t.Fatalf("unexpected ana positions %+v", ana)
	}
	if !reflect.DeepEqual(ana.TransferredIn, []string{"T2"}) || !reflect.DeepEqual(ana.TransferredOut, []string{"T1"}) {
		t.Fatalf("unexpected ana transfers %+v", ana)
	}

	cid := board[1]
	if cid.Username != "cid" || cid.WeeklyPoints != 12.3 || cid.PreviousTotalScore != nil || cid.OverallPositionChange != 0 {
		t.Fatalf("unexpected cid %+v", cid)
	}
	if cid.DPSOne != "Unknown" {
		t.Fatalf("empty slot should read Unknown, got %q", cid.DPSOne)
	}

	bob := board[2]
	if bob.WeeklyPoints != 10 || bob.OverallPositionChange != -1 || *bob.PreviousTotalScore != 40 {
		t.Fatalf("unexpected bob %+v", bob)
	}
}

func TestProcess(t *testing.T) {
	weeks := map[string][]Roster{
		"week2": {
			roster("ana", 20, "T2", "D1", "D2", "S1", "S2"),
			roster("bob", 9, "T1", "D1", "D2", "S1", "S2"),
			roster("cid", 4, "T1", "D1", "D2", "S1", "S2"),
		},
		"week1": {
			roster("ana", 10, "T1", "D1", "D2", "S1", "S2"),
			roster("bob", 6, "T1", "D1", "D2", "S1", "S2"),
		},
		"playoffs1": {
			roster("ana", 30, "T2", "D1", "D2", "S1", "S2"),
		},
		"week3": {},
	}
	sum := Process(weeks)

	if !reflect.DeepEqual(sum.Stages["Stage 2 Regular Season"], []string{"week1", "week2"}) {
		t.Fatalf("unexpected stages %v", sum.Stages)
	}
	if _, ok := sum.Leaderboards["week3"]; ok {
		t.Fatal("empty gameweek must be skipped")
	}

	w1 := sum.Leaderboards["week1"]
	if w1.NewUsers != 2 || w1.ExistingUsers != 0 || w1.AveragePoints != 8 {
		t.Fatalf("unexpected week1 %+v", w1)
	}
	w2 := sum.Leaderboards["week2"]
	// semanales: ana 10, bob 3, cid 4
	if w2.NewUsers != 1 || w2.ExistingUsers != 2 || w2.AveragePoints != 5.7 || w2.TotalParticipants != 3 {
		t.Fatalf("unexpected week2 %+v", w2)
	}
	if w2.Data[1].Username != "cid" {
		t.Fatalf("expected cid second by weekly points, got %+v", w2.Data)
	}

	var t2 PlayerPick
	for _, p := range sum.Transfers["week2"] {
		if p.Name == "T2" {
			t2 = p
		}
	}
	if t2.TransferredIn != 1 || t2.TransferInPct != 50 {
		t.Fatalf("unexpected T2 transfer stats %+v", t2)
	}

	po := sum.Leaderboards["playoffs1"]
	if po.Data[0].WeeklyPoints != 10 || po.ExistingUsers != 1 {
		t.Fatalf("playoffs must compare against the last regular week, got %+v", po)
	}
}
