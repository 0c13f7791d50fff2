package service

import (
	"context"
	"fmt"

	"github.com/jose-valero/ow-fantasy-report/internal/adapters/faceit"
	"github.com/jose-valero/ow-fantasy-report/internal/domain"
)

const gameOW2 = "ow2"

// assemble pasa de los DTO de FACEIT al modelo del reporte.
func (s *ReportService) assemble(ctx context.Context, md *faceit.Match, st *faceit.MatchStats) (*domain.Match, error) {
	m := &domain.Match{
		ID:          md.MatchID,
		Competition: md.CompetitionName,
		Status:      md.Status,
		Teams: [2]domain.Team{
			{FactionID: md.Teams.Faction1.FactionID, Name: md.Teams.Faction1.Name},
			{FactionID: md.Teams.Faction2.FactionID, Name: md.Teams.Faction2.Name},
		},
	}

	names := newNameResolver(s, md)
	maps := make(map[string]string, len(md.Voting.Map.Entities))
	for _, e := range md.Voting.Map.Entities {
		maps[e.GameMapID] = e.Name
	}

	for i, r := range st.Rounds {
		if len(r.Teams) != 2 {
			return nil, fmt.Errorf("%w: round %d has %d teams", ErrUpstream, i+1, len(r.Teams))
		}
		mapID := r.RoundStats[faceit.RoundMap]
		mapName := maps[mapID]
		if mapName == "" {
			mapName = mapID
		}
		mp := domain.MapResult{
			Number:          i + 1,
			Mode:            r.RoundStats[faceit.RoundMode],
			Name:            mapName,
			ScoreSummary:    r.RoundStats[faceit.RoundSummary],
			WinnerFactionID: r.RoundStats[faceit.RoundWinner],
		}
		for t, rt := range r.Teams {
			team := domain.Team{FactionID: rt.TeamID, Name: m.FactionName(rt.TeamID)}
			for _, rp := range rt.Players {
				team.Players = append(team.Players, domain.Player{
					ID:    rp.PlayerID,
					Name:  names.resolve(ctx, rp),
					Role:  rp.PlayerStats[domain.StatRole],
					Stats: domain.Stats(rp.PlayerStats),
				})
			}
			mp.Teams[t] = team
		}
		m.Maps = append(m.Maps, mp)
	}
	return m, nil
}

// nameResolver: roster del match -> /players/{id} -> nickname de las stats.
// Memoiza dentro de un mismo reporte para no repetir llamadas por mapa.
type nameResolver struct {
	s      *ReportService
	roster map[string]string
}

func newNameResolver(s *ReportService, md *faceit.Match) *nameResolver {
	roster := map[string]string{}
	for _, f := range []faceit.Faction{md.Teams.Faction1, md.Teams.Faction2} {
		for _, p := range f.Roster {
			if p.GamePlayerName != "" {
				roster[p.PlayerID] = p.GamePlayerName
			}
		}
	}
	return &nameResolver{s: s, roster: roster}
}

// Sin player_id no hay memo ni lookup: sólo el nickname de las stats.
func (n *nameResolver) resolve(ctx context.Context, rp faceit.RoundPlayer) string {
	if rp.PlayerID == "" {
		return rp.Nickname
	}
	if name, ok := n.roster[rp.PlayerID]; ok {
		return name
	}
	name := ""
	pl, err := n.s.fc.GetPlayer(ctx, rp.PlayerID)
	if err != nil {
		n.s.log.Warn("player lookup failed", "player_id", rp.PlayerID, "error", err)
	} else {
		name = pl.GameName(gameOW2)
	}
	if name == "" {
		name = rp.Nickname
	}
	if name == "" {
		name = rp.PlayerID
	}
	n.roster[rp.PlayerID] = name
	return name
}
