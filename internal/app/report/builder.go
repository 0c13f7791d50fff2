// Package report arma el reporte de texto de un match ya puntuado.
package report

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/domain"
)

var ErrIncompleteMatch = errors.New("report: match needs two identified teams")

type Layout int

const (
	LayoutStacked Layout = iota
	LayoutSideBySide
)

// LayoutFrom traduce el flag side_by_side del form.
func LayoutFrom(sideBySide bool) Layout {
	if sideBySide {
		return LayoutSideBySide
	}
	return LayoutStacked
}

func (l Layout) String() string {
	if l == LayoutSideBySide {
		return "side-by-side"
	}
	return "stacked"
}

type Options struct {
	Layout Layout
}

// Build: encabezado con el resultado, tablas de totales por equipo y luego el
// detalle de cada mapa. Sin I/O.
func Build(m *domain.Match, opts Options) (string, error) {
	if m == nil || m.Teams[0].FactionID == "" || m.Teams[1].FactionID == "" {
		return "", ErrIncompleteMatch
	}

	var b strings.Builder
	writeHeader(&b, m)

	writeTeams(&b, m.Teams, opts.Layout)

	for _, mp := range m.Maps {
		fmt.Fprintf(&b, "Map %d: %s - %s\n", mp.Number, mp.Mode, mp.Name)
		b.WriteString(MapLine(m, mp))
		b.WriteString("\n\n")
		writeTeams(&b, mp.Teams, opts.Layout)
	}
	return b.String(), nil
}

func writeHeader(b *strings.Builder, m *domain.Match) {
	if m.Competition != "" {
		b.WriteString(m.Competition)
		b.WriteString("\n")
	}
	b.WriteString(ResultLine(m))
	b.WriteString("\n")
	if w := m.Winner(); w != nil {
		fmt.Fprintf(b, "Winner: %s\n\n", w.Name)
	} else {
		b.WriteString("Result: Draw\n\n")
	}
}

// ResultLine: "Alpha 2 - Bravo 1", según los mapas ganados.
func ResultLine(m *domain.Match) string {
	a, c := m.Tally()
	return fmt.Sprintf("%s %d - %s %d", m.Teams[0].Name, a, m.Teams[1].Name, c)
}

// MapLine: "Alpha 2 / 1 Bravo (winner: Alpha)".
func MapLine(m *domain.Match, mp domain.MapResult) string {
	left := teamLabel(m, mp.Teams[0])
	right := teamLabel(m, mp.Teams[1])
	result := "(draw)"
	if mp.WinnerFactionID != "" {
		result = "(winner: " + m.TeamName(mp.WinnerFactionID) + ")"
	}
	return fmt.Sprintf("%s %s %s %s", left, mp.ScoreSummary, right, result)
}

func writeTeams(b *strings.Builder, teams [2]domain.Team, layout Layout) {
	left := teamTable(teams[0])
	right := teamTable(teams[1])
	if layout == LayoutSideBySide {
		b.WriteString(joinSideBySide(left, right))
		b.WriteString("\n\n")
		return
	}
	b.WriteString(left)
	b.WriteString("\n\n")
	b.WriteString(right)
	b.WriteString("\n\n")
}

// Ranked devuelve los jugadores por puntos desc; empates respetan el roster.
func Ranked(players []domain.Player) []domain.Player {
	out := make([]domain.Player, len(players))
	copy(out, players)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// FormatScore usa un decimal, como la planilla de la liga.
func FormatScore(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
