// Package leaderboard calcula la tabla semanal de la liga de fantasy a partir
// de las fotos de rosters de cada gameweek.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

const unknownPlayer = "Unknown"

// Points acepta número o string en el JSON ("score": 12.5 o "12.5").
type Points float64

func (p *Points) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*p = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
		if s == "" {
			*p = 0
			return nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("score %s: %w", s, err)
	}
	*p = Points(v)
	return nil
}

// Roster es la foto de un usuario en un gameweek. Score es el acumulado.
type Roster struct {
	Username   string  `json:"username"`
	Score      *Points `json:"score"`
	Tank       string  `json:"tank"`
	DPSOne     string  `json:"dpsOne"`
	DPSTwo     string  `json:"dpsTwo"`
	SupportOne string  `json:"supportOne"`
	SupportTwo string  `json:"supportTwo"`
}

func (r Roster) total() float64 {
	if r.Score == nil {
		return 0
	}
	return float64(*r.Score)
}

type slot struct {
	role   string
	player string
}

func (r Roster) slots() []slot {
	return []slot{
		{"tank", r.Tank},
		{"dps", r.DPSOne},
		{"dps", r.DPSTwo},
		{"support", r.SupportOne},
		{"support", r.SupportTwo},
	}
}

// Players devuelve el set de jugadores elegidos (sin huecos ni "Unknown").
func (r Roster) Players() map[string]bool {
	out := make(map[string]bool, 5)
	for _, s := range r.slots() {
		if s.player != "" && s.player != unknownPlayer {
			out[s.player] = true
		}
	}
	return out
}

func orUnknown(s string) string {
	if s == "" {
		return unknownPlayer
	}
	return s
}

// SortGameweeks: temporada regular primero y después playoffs, cada grupo por número.
func SortGameweeks(names []string) []string {
	out := append([]string(nil), names...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := isPlayoff(out[i]), isPlayoff(out[j])
		if pi != pj {
			return !pi
		}
		ni, nj := weekNumber(out[i]), weekNumber(out[j])
		if ni != nj {
			return ni < nj
		}
		return out[i] < out[j]
	})
	return out
}

// Stage agrupa los gameweeks para el selector del front.
func Stage(name string) string {
	if isPlayoff(name) {
		return "Stage 2 Playoffs"
	}
	return "Stage 2 Regular Season"
}

func isPlayoff(name string) bool {
	return strings.Contains(strings.ToLower(name), "playoff")
}

func weekNumber(name string) int {
	var digits strings.Builder
	for _, r := range name {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	n, _ := strconv.Atoi(digits.String())
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
