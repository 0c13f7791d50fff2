package storage

import (
	"context"
	"database/sql"
	"fmt"

	pq "github.com/lib/pq"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
)

type RosterRepo struct{ db *sql.DB }

func NewRosterRepo(db *sql.DB) *RosterRepo { return &RosterRepo{db: db} }

// UpsertGameweek reemplaza la foto completa de un gameweek.
func (r *RosterRepo) UpsertGameweek(ctx context.Context, gameweek string, rosters []leaderboard.Roster) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM gameweek_rosters WHERE gameweek = $1`, gameweek); err != nil {
		return fmt.Errorf("clear gameweek %s: %w", gameweek, err)
	}

	pos := 0
	for _, ro := range rosters {
		if ro.Username == "" {
			continue
		}
		var score *float64
		if ro.Score != nil {
			v := float64(*ro.Score)
			score = &v
		}
		// los duplicados de username pisan al anterior, como en el JSON
		_, err := tx.ExecContext(ctx, `
INSERT INTO gameweek_rosters
  (gameweek, username, position, score, tank, dps_one, dps_two, support_one, support_two, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,now())
ON CONFLICT (gameweek, username) DO UPDATE SET
  score=EXCLUDED.score, tank=EXCLUDED.tank, dps_one=EXCLUDED.dps_one, dps_two=EXCLUDED.dps_two,
  support_one=EXCLUDED.support_one, support_two=EXCLUDED.support_two, updated_at=now()
`, gameweek, ro.Username, pos, score, ro.Tank, ro.DPSOne, ro.DPSTwo, ro.SupportOne, ro.SupportTwo)
		if err != nil {
			return fmt.Errorf("insert roster %s/%s: %w", gameweek, ro.Username, err)
		}
		pos++
	}
	return tx.Commit()
}

// Gameweeks devuelve todos los gameweeks guardados.
func (r *RosterRepo) Gameweeks(ctx context.Context) (map[string][]leaderboard.Roster, error) {
	return r.Load(ctx, nil)
}

// Load trae sólo los gameweeks pedidos (todos si names está vacío).
func (r *RosterRepo) Load(ctx context.Context, names []string) (map[string][]leaderboard.Roster, error) {
	q := `
SELECT gameweek, username, score, tank, dps_one, dps_two, support_one, support_two
  FROM gameweek_rosters`
	args := []any{}
	if len(names) > 0 {
		q += ` WHERE gameweek = ANY($1)`
		args = append(args, pq.Array(names))
	}
	q += ` ORDER BY gameweek, position`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string][]leaderboard.Roster{}
	for rows.Next() {
		var (
			gw    string
			ro    leaderboard.Roster
			score sql.NullFloat64
		)
		if err := rows.Scan(&gw, &ro.Username, &score, &ro.Tank, &ro.DPSOne, &ro.DPSTwo, &ro.SupportOne, &ro.SupportTwo); err != nil {
			return nil, err
		}
		if score.Valid {
			p := leaderboard.Points(score.Float64)
			ro.Score = &p
		}
		out[gw] = append(out[gw], ro)
	}
	return out, rows.Err()
}
