// Package fantasy convierte las stats crudas de un jugador en puntos de fantasy.
package fantasy

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/domain"
)

var ErrMalformedStat = errors.New("malformed stat value")

// Rule suma floor(valor / Per) * Points. Per 0 o 1 = multiplicador directo.
type Rule struct {
	Stat   string
	Per    float64
	Points float64
}

type Ruleset []Rule

// Default es el reglamento de la liga: 1 pt cada 3 elims, -1 por muerte,
// 0.5 cada 2000 de daño y 0.5 cada 2000 de curación.
func Default() Ruleset {
	return Ruleset{
		{Stat: domain.StatEliminations, Per: 3, Points: 1},
		{Stat: domain.StatDeaths, Per: 1, Points: -1},
		{Stat: domain.StatDamage, Per: 2000, Points: 0.5},
		{Stat: domain.StatHealing, Per: 2000, Points: 0.5},
	}
}

// Weighted arma un ruleset de multiplicadores simples (orden por nombre de stat).
func Weighted(weights map[string]float64) Ruleset {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rs := make(Ruleset, 0, len(keys))
	for _, k := range keys {
		rs = append(rs, Rule{Stat: k, Per: 1, Points: weights[k]})
	}
	return rs
}

// Stats devuelve las claves que puntúan, en orden.
func (rs Ruleset) Stats() []string {
	out := make([]string, 0, len(rs))
	for _, r := range rs {
		out = append(out, r.Stat)
	}
	return out
}

func (r Rule) points(v float64) float64 {
	if r.Per == 0 || r.Per == 1 {
		return v * r.Points
	}
	return math.Floor(v/r.Per) * r.Points
}

// Score suma las reglas sobre las stats reconocidas. Lo que no tiene regla se
// ignora y lo que falta vale 0.
func Score(stats domain.Stats, rules Ruleset) (float64, error) {
	var total float64
	for _, r := range rules {
		raw, ok := stats[r.Stat]
		if !ok {
			continue
		}
		v, err := ParseStat(raw)
		if err != nil {
			return 0, fmt.Errorf("%s=%q: %w", r.Stat, raw, err)
		}
		total += r.points(v)
	}
	return total, nil
}

// ParseStat lee un valor de stat. Vacío cuenta como 0.
func ParseStat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, ErrMalformedStat
	}
	return v, nil
}
