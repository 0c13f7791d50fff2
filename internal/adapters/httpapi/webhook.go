package httpapi

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/jose-valero/ow-fantasy-report/internal/infra/logging"
)

const webhookHeader = "X-FACEIT-WH"

// webhookEvent: FACEIT manda "event" o "type", y el cuerpo en "payload" o "data".
type webhookEvent struct {
	Event   string         `json:"event"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
	Data    map[string]any `json:"data"`
}

func (e webhookEvent) name() string {
	if e.Event != "" {
		return strings.ToLower(e.Event)
	}
	return strings.ToLower(e.Type)
}

func (e webhookEvent) field(keys ...string) string {
	for _, src := range []map[string]any{e.Payload, e.Data} {
		for _, k := range keys {
			if v, ok := src[k].(string); ok && v != "" {
				return v
			}
		}
	}
	return ""
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	got := r.Header.Get(webhookHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(s.secret)) != 1 {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "body too large", http.StatusRequestEntityTooLarge)
		return
	}
	var evt webhookEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	name := evt.name()
	if s.onMatchEvent != nil && strings.HasPrefix(name, "match_status_") {
		matchID := evt.field("match_id", "matchId", "id")
		if matchID != "" {
			status := strings.TrimPrefix(name, "match_status_")
			if st := evt.field("status"); st != "" {
				status = st
			}
			s.log.Info("webhook match event", logging.FieldMatchID, matchID, "status", status)
			if s.syncEvents {
				s.onMatchEvent(r.Context(), matchID, status)
			} else {
				// el reporte tarda más que el ack que espera FACEIT
				go s.onMatchEvent(context.WithoutCancel(r.Context()), matchID, status)
			}
		}
	} else {
		s.log.Debug("webhook ignored", "event", name)
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
