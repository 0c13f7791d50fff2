package fantasy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/domain"
)

// ScoreMatch puntúa a cada jugador en cada mapa y rearma m.Teams con los
// totales del match (suma de puntos y de las stats que puntúan).
func ScoreMatch(m *domain.Match, rules Ruleset) error {
	for i := range m.Maps {
		mp := &m.Maps[i]
		for t := range mp.Teams {
			players := mp.Teams[t].Players
			for p := range players {
				s, err := Score(players[p].Stats, rules)
				if err != nil {
					return fmt.Errorf("map %d, player %s: %w", mp.Number, players[p].Name, err)
				}
				players[p].Score = s
			}
		}
	}
	return totals(m, rules)
}

type playerTotal struct {
	player domain.Player
	roles  []string
	sums   map[string]float64
}

func totals(m *domain.Match, rules Ruleset) error {
	var byTeam [2][]*playerTotal
	var index [2]map[string]*playerTotal
	for t := range index {
		index[t] = map[string]*playerTotal{}
	}

	for _, mp := range m.Maps {
		for pos, team := range mp.Teams {
			t := teamSlot(m, team.FactionID, pos)
			for _, p := range team.Players {
				key := p.ID
				if key == "" {
					key = p.Name
				}
				pt, ok := index[t][key]
				if !ok {
					pt = &playerTotal{
						player: domain.Player{ID: p.ID, Name: p.Name},
						sums:   map[string]float64{},
					}
					index[t][key] = pt
					byTeam[t] = append(byTeam[t], pt)
				}
				pt.player.Score += p.Score
				pt.addRole(p.Role)
				for _, stat := range rules.Stats() {
					raw, ok := p.Stats[stat]
					if !ok {
						continue
					}
					v, err := ParseStat(raw)
					if err != nil {
						return fmt.Errorf("map %d, player %s: %s=%q: %w", mp.Number, p.Name, stat, raw, err)
					}
					pt.sums[stat] += v
				}
			}
		}
	}

	for t := range m.Teams {
		players := make([]domain.Player, 0, len(byTeam[t]))
		for _, pt := range byTeam[t] {
			p := pt.player
			p.Role = strings.Join(pt.roles, "/")
			p.Stats = domain.Stats{}
			for stat, v := range pt.sums {
				p.Stats[stat] = strconv.FormatFloat(v, 'f', -1, 64)
			}
			players = append(players, p)
		}
		m.Teams[t].Players = players
	}
	return nil
}

func (pt *playerTotal) addRole(role string) {
	if role == "" {
		return
	}
	for _, r := range pt.roles {
		if r == role {
			return
		}
	}
	pt.roles = append(pt.roles, role)
}

// teamSlot ubica la facción en m.Teams; si no aparece, usa la posición del mapa.
func teamSlot(m *domain.Match, factionID string, pos int) int {
	for i, t := range m.Teams {
		if factionID != "" && t.FactionID == factionID {
			return i
		}
	}
	if pos > 1 {
		return 1
	}
	return pos
}
