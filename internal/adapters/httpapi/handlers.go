package httpapi

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

const (
	cacheShort = "public, max-age=300, s-maxage=300"
	cacheLong  = "public, max-age=3600, s-maxage=3600"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", cacheShort)
	if err := s.index.Execute(w, nil); err != nil {
		s.log.Error("render index", "error", err)
	}
}

type processRequest struct {
	MatchURL   string `json:"match_url"`
	SideBySide bool   `json:"side_by_side"`
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	in, err := readProcessRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.MatchURL == "" {
		writeError(w, http.StatusBadRequest, "No match URL provided")
		return
	}

	etag := ProcessETag(in.MatchURL, in.SideBySide)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	out, err := s.reports.Generate(r.Context(), in.MatchURL, report.LayoutFrom(in.SideBySide))
	if err != nil {
		status := StatusFor(err)
		s.log.Warn("process failed", "match_url", in.MatchURL, logging.FieldStatusCode, status, "error", err)
		writeError(w, status, err.Error())
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheLong)
	writeJSON(w, http.StatusOK, map[string]string{"report": out})
}

// readProcessRequest acepta form (el front) o JSON.
func readProcessRequest(w http.ResponseWriter, r *http.Request) (processRequest, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var in processRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&in); err != nil {
			return in, errors.New("invalid JSON body")
		}
		in.MatchURL = strings.TrimSpace(in.MatchURL)
		return in, nil
	}
	return processRequest{
		MatchURL:   strings.TrimSpace(r.FormValue("match_url")),
		SideBySide: r.FormValue("side_by_side") == "true",
	}, nil
}

// ProcessETag identifica un reporte por URL + layout.
func ProcessETag(matchURL string, sideBySide bool) string {
	sum := md5.Sum([]byte(matchURL + "_" + strconv.FormatBool(sideBySide)))
	return hex.EncodeToString(sum[:])
}

// StatusFor traduce los errores del servicio a códigos HTTP.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidMatchURL):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrMatchNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrMatchNotFinished):
		return http.StatusConflict
	case errors.Is(err, service.ErrCompetitionNotAllowed):
		return http.StatusForbidden
	}
	return http.StatusBadGateway
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	sum, err := s.boards.Summary(r.Context())
	if err != nil {
		s.log.Error("leaderboard failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":            err.Error(),
			"leaderboard_path": s.leaderboardDir,
		})
		return
	}
	body, err := json.Marshal(sum)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sum5 := md5.Sum(body)
	etag := hex.EncodeToString(sum5[:])

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", cacheShort)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":    "healthy",
		"timestamp": s.now().UTC().Format(time.RFC3339),
	}
	if s.leaderboardDir != "" {
		_, err := os.Stat(s.leaderboardDir)
		body["leaderboard_path"] = s.leaderboardDir
		body["leaderboard_exists"] = err == nil
	}
	writeJSON(w, http.StatusOK, body)
}
