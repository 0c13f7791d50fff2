package report

import (
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"

	"github.com/jose-valero/ow-fantasy-report/internal/domain"
)

const columnGap = "    "

func teamTable(t domain.Team) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleDouble)
	tw.Style().Format.Header = text.FormatDefault
	tw.Style().Options.SeparateRows = true

	tw.AppendHeader(table.Row{teamTitle(t), "Role", "Eliminations", "Deaths", "Damage", "Healing", "Score"})
	for _, p := range Ranked(t.Players) {
		tw.AppendRow(table.Row{
			p.Name,
			p.Role,
			stat(p, domain.StatEliminations),
			stat(p, domain.StatDeaths),
			stat(p, domain.StatDamage),
			stat(p, domain.StatHealing),
			FormatScore(p.Score),
		})
	}
	return tw.Render()
}

func teamTitle(t domain.Team) string {
	if t.Name != "" {
		return t.Name
	}
	return t.FactionID
}

// teamLabel: "Draw" sólo aplica al ganador, nunca a un equipo.
func teamLabel(m *domain.Match, t domain.Team) string {
	if t.Name != "" {
		return t.Name
	}
	return m.FactionName(t.FactionID)
}

func stat(p domain.Player, key string) string {
	if v := strings.TrimSpace(p.Stats[key]); v != "" {
		return v
	}
	return "0"
}

// joinSideBySide pega dos tablas línea a línea; la más corta se rellena con
// espacios del ancho de la izquierda.
func joinSideBySide(left, right string) string {
	l := strings.Split(left, "\n")
	r := strings.Split(right, "\n")

	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	width := cond.StringWidth(l[0])

	n := len(l)
	if len(r) > n {
		n = len(r)
	}
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		a := strings.Repeat(" ", width)
		if i < len(l) {
			a = cond.FillRight(l[i], width)
		}
		b := ""
		if i < len(r) {
			b = r[i]
		}
		lines = append(lines, strings.TrimRight(a+columnGap+b, " "))
	}
	return strings.Join(lines, "\n")
}
