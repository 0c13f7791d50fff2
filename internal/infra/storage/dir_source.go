package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
)

// DirSource lee un JSON por gameweek desde un directorio (week1.json, ...).
type DirSource struct {
	dir string
	log *slog.Logger
}

func NewDirSource(dir string, log *slog.Logger) *DirSource {
	if log == nil {
		log = slog.Default()
	}
	return &DirSource{dir: dir, log: log}
}

// Gameweeks: directorio inexistente = sin datos; archivos rotos se loguean y se saltean.
func (s *DirSource) Gameweeks(ctx context.Context) (map[string][]leaderboard.Roster, error) {
	out := map[string][]leaderboard.Roster{}
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Warn("leaderboard dir not found", "dir", s.dir)
		return out, nil
	}
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		path := filepath.Join(s.dir, e.Name())
		rosters, err := ReadRosterFile(path)
		if err != nil {
			s.log.Warn("skipping gameweek file", "file", e.Name(), "error", err)
			continue
		}
		out[strings.TrimSuffix(e.Name(), ".json")] = rosters
	}
	return out, nil
}

// ReadRosterFile decodifica un gameweek; las entradas null se descartan.
func ReadRosterFile(path string) ([]leaderboard.Roster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw []*leaderboard.Roster
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	out := make([]leaderboard.Roster, 0, len(raw))
	for _, r := range raw {
		if r != nil {
			out = append(out, *r)
		}
	}
	return out, nil
}
