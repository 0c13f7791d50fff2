package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// WriteReportFile crea el directorio si hace falta y pisa el archivo.
func WriteReportFile(path, report string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(report), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// FileSink guarda cada reporte como dir/<match_id>.txt (firma de service.ReportSink).
func FileSink(dir string) func(ctx context.Context, matchID, report string) error {
	return func(ctx context.Context, matchID, report string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := unsafeName.ReplaceAllString(matchID, "_")
		if name == "" {
			name = "match_report"
		}
		return WriteReportFile(filepath.Join(dir, name+".txt"), report)
	}
}
