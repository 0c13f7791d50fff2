package leaderboard

type Week struct {
	Data              []Entry `json:"data"`
	TotalParticipants int     `json:"total_participants"`
	NewUsers          int     `json:"new_users"`
	ExistingUsers     int     `json:"existing_users"`
	AveragePoints     float64 `json:"average_points"`
}

type Summary struct {
	Leaderboards map[string]Week         `json:"leaderboards"`
	Transfers    map[string][]PlayerPick `json:"transfers"`
	Stages       map[string][]string     `json:"stages"`
}

// Process recorre los gameweeks en orden y arma todo lo que consume el front.
// Los gameweeks sin rosters se saltean y no cuentan como semana anterior.
func Process(weeks map[string][]Roster) Summary {
	sum := Summary{
		Leaderboards: map[string]Week{},
		Transfers:    map[string][]PlayerPick{},
		Stages:       map[string][]string{},
	}

	names := make([]string, 0, len(weeks))
	for n := range weeks {
		names = append(names, n)
	}

	var previous []Roster
	for _, name := range SortGameweeks(names) {
		rosters := weeks[name]
		if len(rosters) == 0 {
			continue
		}

		stage := Stage(name)
		sum.Stages[stage] = append(sum.Stages[stage], name)

		transfers, existing := Transfers(rosters, previous)
		sum.Transfers[name] = Frequency(rosters, transfers, existing)

		board := Build(rosters, previous)
		var total float64
		for _, e := range board {
			total += e.WeeklyPoints
		}
		avg := 0.0
		if len(board) > 0 {
			avg = round1(total / float64(len(board)))
		}

		sum.Leaderboards[name] = Week{
			Data:              board,
			TotalParticipants: len(board),
			NewUsers:          len(rosters) - existing,
			ExistingUsers:     existing,
			AveragePoints:     avg,
		}
		previous = rosters
	}
	return sum
}
