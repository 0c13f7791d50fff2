package domain

// Roles que reporta FACEIT para OW2. Cualquier otro valor se conserva tal cual.
const (
	RoleTank    = "Tank"
	RoleDamage  = "Damage"
	RoleSupport = "Support"
)

// StatusFinished es el estado de FACEIT para un match terminado.
const StatusFinished = "FINISHED"

// Stats: nombre de la stat -> valor crudo (FACEIT manda todo como string).
type Stats map[string]string

type Player struct {
	ID    string
	Name  string
	Role  string
	Stats Stats
	Score float64
}

type Team struct {
	FactionID string
	Name      string
	Players   []Player // orden del roster
}

// MapResult es un mapa jugado. WinnerFactionID vacío = empate.
type MapResult struct {
	Number          int
	Mode            string
	Name            string
	ScoreSummary    string
	WinnerFactionID string
	Teams           [2]Team
}

// Match es el match ya armado. Teams lleva los totales del match completo
// (se rellenan al puntuar); Maps el detalle por mapa.
type Match struct {
	ID          string
	Competition string
	Status      string
	Teams       [2]Team
	Maps        []MapResult
}

// Tally cuenta mapas ganados por cada facción (los empates no suman).
func (m *Match) Tally() (int, int) {
	var a, b int
	for _, mp := range m.Maps {
		switch mp.WinnerFactionID {
		case "":
		case m.Teams[0].FactionID:
			a++
		case m.Teams[1].FactionID:
			b++
		}
	}
	return a, b
}

// Winner devuelve el equipo con más mapas ganados, o nil si hay empate.
func (m *Match) Winner() *Team {
	a, b := m.Tally()
	switch {
	case a > b:
		return &m.Teams[0]
	case b > a:
		return &m.Teams[1]
	}
	return nil
}

// TeamName es para ganadores: "Draw" si la facción viene vacía.
func (m *Match) TeamName(factionID string) string {
	if factionID == "" {
		return "Draw"
	}
	return m.FactionName(factionID)
}

// FactionName busca el nombre de la facción; si no la conoce devuelve el id tal cual.
func (m *Match) FactionName(factionID string) string {
	if factionID != "" {
		for _, t := range m.Teams {
			if t.FactionID == factionID {
				return t.Name
			}
		}
	}
	return factionID
}

// Claves de stats de FACEIT que usa el reporte.
const (
	StatRole         = "Role"
	StatEliminations = "Eliminations"
	StatDeaths       = "Deaths"
	StatDamage       = "Damage Dealt"
	StatHealing      = "Healing Done"
)
