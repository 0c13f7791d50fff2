package leaderboard

import "sort"

type Transfer struct {
	In  int
	Out int
}

// Transfers compara cada usuario que ya estaba la semana anterior y cuenta
// altas/bajas por jugador. Devuelve además cuántos usuarios repiten.
func Transfers(current, previous []Roster) (map[string]*Transfer, int) {
	out := map[string]*Transfer{}
	if len(current) == 0 || len(previous) == 0 {
		return out, 0
	}
	prev := byUsername(previous)

	existing := 0
	for _, cur := range current {
		if cur.Username == "" {
			continue
		}
		old, ok := prev[cur.Username]
		if !ok {
			continue
		}
		existing++
		now, before := cur.Players(), old.Players()
		for p := range now {
			if !before[p] {
				entry(out, p).In++
			}
		}
		for p := range before {
			if !now[p] {
				entry(out, p).Out++
			}
		}
	}
	return out, existing
}

func entry(m map[string]*Transfer, player string) *Transfer {
	t, ok := m[player]
	if !ok {
		t = &Transfer{}
		m[player] = t
	}
	return t
}

type PlayerPick struct {
	Name           string  `json:"name"`
	Role           string  `json:"role"`
	Count          int     `json:"count"`
	Percentage     float64 `json:"percentage"`
	TransferredIn  int     `json:"transferred_in"`
	TransferredOut int     `json:"transferred_out"`
	NetTransfers   int     `json:"net_transfers"`
	TransferInPct  float64 `json:"transfer_in_pct"`
	TransferOutPct float64 `json:"transfer_out_pct"`
}

// Frequency cuenta cuántos equipos eligieron a cada jugador.
func Frequency(rosters []Roster, transfers map[string]*Transfer, existing int) []PlayerPick {
	if len(rosters) == 0 {
		return []PlayerPick{}
	}
	picks := map[string]*PlayerPick{}
	for _, r := range rosters {
		for _, s := range r.slots() {
			if s.player == "" || s.player == unknownPlayer {
				continue
			}
			pp, ok := picks[s.player]
			if !ok {
				pp = &PlayerPick{Name: s.player, Role: s.role}
				picks[s.player] = pp
			}
			pp.Count++
		}
	}

	total := float64(len(rosters))
	out := make([]PlayerPick, 0, len(picks))
	for name, pp := range picks {
		pp.Percentage = round1(float64(pp.Count) / total * 100)
		if t, ok := transfers[name]; ok {
			pp.TransferredIn = t.In
			pp.TransferredOut = t.Out
			pp.NetTransfers = t.In - t.Out
			if existing > 0 {
				pp.TransferInPct = round1(float64(t.In) / float64(existing) * 100)
				pp.TransferOutPct = round1(float64(t.Out) / float64(existing) * 100)
			}
		}
		out = append(out, *pp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

type Entry struct {
	Username                string   `json:"username"`
	WeeklyPoints            float64  `json:"weekly_points"`
	WeeklyPosition          int      `json:"weekly_position"`
	CurrentTotalScore       float64  `json:"current_total_score"`
	CurrentOverallPosition  int      `json:"current_overall_position"`
	PreviousTotalScore      *float64 `json:"previous_total_score"`
	PreviousOverallPosition *int     `json:"previous_overall_position"`
	OverallPositionChange   int      `json:"overall_position_change"`
	TransferredIn           []string `json:"transferred_in"`
	TransferredOut          []string `json:"transferred_out"`
	Tank                    string   `json:"tank"`
	DPSOne                  string   `json:"dpsOne"`
	DPSTwo                  string   `json:"dpsTwo"`
	SupportOne              string   `json:"supportOne"`
	SupportTwo              string   `json:"supportTwo"`
}

// Build arma la tabla de un gameweek: puntos de la semana (acumulado actual
// menos el anterior), posición general y su variación, y transferencias.
func Build(current, previous []Roster) []Entry {
	valid := make([]Roster, 0, len(current))
	for _, r := range current {
		if r.Username != "" && r.Score != nil {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		return []Entry{}
	}

	prev := byUsername(previous)
	prevPos := positions(previous)
	curPos := positions(valid)

	out := make([]Entry, 0, len(valid))
	for _, r := range valid {
		e := Entry{
			Username:               r.Username,
			WeeklyPoints:           round1(r.total()),
			CurrentTotalScore:      round1(r.total()),
			CurrentOverallPosition: curPos[r.Username],
			TransferredIn:          []string{},
			TransferredOut:         []string{},
			Tank:                   orUnknown(r.Tank),
			DPSOne:                 orUnknown(r.DPSOne),
			DPSTwo:                 orUnknown(r.DPSTwo),
			SupportOne:             orUnknown(r.SupportOne),
			SupportTwo:             orUnknown(r.SupportTwo),
		}
		if old, ok := prev[r.Username]; ok {
			before := round1(old.total())
			e.WeeklyPoints = round1(r.total() - old.total())
			e.PreviousTotalScore = &before
			if pos, ok := prevPos[r.Username]; ok {
				p := pos
				e.PreviousOverallPosition = &p
				e.OverallPositionChange = pos - e.CurrentOverallPosition
			}
			now, was := r.Players(), old.Players()
			for p := range now {
				if !was[p] {
					e.TransferredIn = append(e.TransferredIn, p)
				}
			}
			for p := range was {
				if !now[p] {
					e.TransferredOut = append(e.TransferredOut, p)
				}
			}
			sort.Strings(e.TransferredIn)
			sort.Strings(e.TransferredOut)
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].WeeklyPoints > out[j].WeeklyPoints })
	for i := range out {
		out[i].WeeklyPosition = i + 1
	}
	return out
}

// positions: ranking por acumulado (desc); sólo rosters con score.
func positions(rosters []Roster) map[string]int {
	ranked := make([]Roster, 0, len(rosters))
	for _, r := range rosters {
		if r.Username != "" && r.Score != nil {
			ranked = append(ranked, r)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].total() > ranked[j].total() })
	out := make(map[string]int, len(ranked))
	for i, r := range ranked {
		out[r.Username] = i + 1
	}
	return out
}

func byUsername(rosters []Roster) map[string]Roster {
	out := make(map[string]Roster, len(rosters))
	for _, r := range rosters {
		if r.Username != "" {
			out[r.Username] = r
		}
	}
	return out
}
