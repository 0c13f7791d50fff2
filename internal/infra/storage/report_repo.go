package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ReportRepo guarda el último reporte de cada match. Sirve para no
// publicar dos veces cuando FACEIT repite el webhook.
type ReportRepo struct{ db *sql.DB }

func NewReportRepo(db *sql.DB) *ReportRepo { return &ReportRepo{db: db} }

// Save tiene la firma de service.ReportSink.
func (r *ReportRepo) Save(ctx context.Context, matchID, report string) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO match_reports (match_id, report, created_at) VALUES ($1, $2, now())
ON CONFLICT (match_id) DO UPDATE SET report = EXCLUDED.report, created_at = now()`, matchID, report)
	if err != nil {
		return fmt.Errorf("save report %s: %w", matchID, err)
	}
	return nil
}

func (r *ReportRepo) Has(ctx context.Context, matchID string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM match_reports WHERE match_id = $1`, matchID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return err == nil, err
}

// PruneReports borra reportes viejos; lo corre el janitor con su propio pool.
func PruneReports(ctx context.Context, pool *pgxpool.Pool, olderThan time.Duration) (int64, error) {
	tag, err := pool.Exec(ctx,
		`DELETE FROM match_reports WHERE created_at < now() - make_interval(secs => $1)`,
		olderThan.Seconds())
	if err != nil {
		return 0, fmt.Errorf("prune reports: %w", err)
	}
	return tag.RowsAffected(), nil
}
