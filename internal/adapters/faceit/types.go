package faceit

// --- Players ---
type PlayerDetails struct {
	PlayerID string `json:"player_id"`
	Nickname string `json:"nickname"`
	Games    map[string]struct {
		GamePlayerName string `json:"game_player_name"`
		SkillLevel     int    `json:"skill_level"`
	} `json:"games"`
}

// GameName devuelve el nombre in-game para un juego ("ow2"), vacío si no está.
func (p *PlayerDetails) GameName(game string) string {
	if p == nil {
		return ""
	}
	return p.Games[game].GamePlayerName
}

// --- Matches (detalle) ---
type Match struct {
	MatchID         string        `json:"match_id"`
	Game            string        `json:"game"`
	CompetitionName string        `json:"competition_name"`
	Status          string        `json:"status"`
	Teams           MatchFactions `json:"teams"`
	Voting          struct {
		Map struct {
			Entities []MapEntity `json:"entities"`
		} `json:"map"`
	} `json:"voting"`
	Results struct {
		Winner string `json:"winner"`
		Score  struct {
			Faction1 int `json:"faction1"`
			Faction2 int `json:"faction2"`
		} `json:"score"`
	} `json:"results"`
}

type MatchFactions struct {
	Faction1 Faction `json:"faction1"`
	Faction2 Faction `json:"faction2"`
}

type Faction struct {
	FactionID string         `json:"faction_id"`
	Name      string         `json:"name"`
	Roster    []RosterPlayer `json:"roster"`
}

type RosterPlayer struct {
	PlayerID       string `json:"player_id"`
	Nickname       string `json:"nickname"`
	GamePlayerName string `json:"game_player_name"`
}

type MapEntity struct {
	GameMapID string `json:"game_map_id"`
	Name      string `json:"name"`
}

// --- Match Stats ---
// FACEIT manda todas las stats como string ("Eliminations": "25").
type MatchStats struct {
	Rounds []Round `json:"rounds"`
}

type Round struct {
	RoundStats map[string]string `json:"round_stats"`
	Teams      []RoundTeam       `json:"teams"`
}

type RoundTeam struct {
	TeamID  string        `json:"team_id"`
	Players []RoundPlayer `json:"players"`
}

type RoundPlayer struct {
	PlayerID    string            `json:"player_id"`
	Nickname    string            `json:"nickname"`
	PlayerStats map[string]string `json:"player_stats"`
}

// Claves de round_stats en OW2.
const (
	RoundMode    = "OW2 Mode"
	RoundMap     = "Map"
	RoundWinner  = "Winner"
	RoundSummary = "Score Summary"
)
