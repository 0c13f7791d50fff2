package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jose-valero/ow-fantasy-report/internal/app/leaderboard"
	"github.com/jose-valero/ow-fantasy-report/internal/app/report"
	"github.com/jose-valero/ow-fantasy-report/internal/app/service"
)

type stubReports struct {
	out    string
	err    error
	calls  int
	url    string
	layout report.Layout
}

func (s *stubReports) Generate(ctx context.Context, matchURL string, layout report.Layout) (string, error) {
	s.calls++
	s.url = matchURL
	s.layout = layout
	return s.out, s.err
}

type stubBoards struct {
	sum leaderboard.Summary
	err error
}

func (s stubBoards) Summary(context.Context) (leaderboard.Summary, error) { return s.sum, s.err }

func newTestServer(r ReportGenerator, b LeaderboardProvider, opts ...Option) http.Handler {
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(r, b, opts...).Handler()
}

func postForm(h http.Handler, form url.Values, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestIndexServesHTML(t *testing.T) {
	h := newTestServer(&stubReports{}, stubBoards{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `name="match_url"`) {
		t.Fatal("index must render the match form")
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
}

func TestProcessReturnsReportWithETag(t *testing.T) {
	rep := &stubReports{out: "the report"}
	h := newTestServer(rep, stubBoards{})

	rec := postForm(h, url.Values{"match_url": {" https://faceit.com/room/x "}, "side_by_side": {"true"}}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if decodeBody(t, rec)["report"] != "the report" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rep.url != "https://faceit.com/room/x" || rep.layout != report.LayoutSideBySide {
		t.Fatalf("unexpected call url=%q layout=%v", rep.url, rep.layout)
	}
	if got, want := rec.Header().Get("ETag"), ProcessETag("https://faceit.com/room/x", true); got != want {
		t.Fatalf("expected etag %s, got %s", want, got)
	}
}

func TestProcessNotModified(t *testing.T) {
	rep := &stubReports{out: "x"}
	h := newTestServer(rep, stubBoards{})
	etag := ProcessETag("u", false)

	rec := postForm(h, url.Values{"match_url": {"u"}}, map[string]string{"If-None-Match": etag})
	if rec.Code != http.StatusNotModified {
		t.Fatalf("expected 304, got %d", rec.Code)
	}
	if rep.calls != 0 {
		t.Fatal("304 must not generate the report")
	}
}

func TestProcessJSONBody(t *testing.T) {
	rep := &stubReports{out: "x"}
	h := newTestServer(rep, stubBoards{})
	req := httptest.NewRequest(http.MethodPost, "/process", strings.NewReader(`{"match_url":"u","side_by_side":true}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rep.layout != report.LayoutSideBySide {
		t.Fatalf("unexpected %d layout=%v", rec.Code, rep.layout)
	}
}

func TestProcessMissingURL(t *testing.T) {
	rep := &stubReports{}
	rec := postForm(newTestServer(rep, stubBoards{}), url.Values{}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if decodeBody(t, rec)["error"] != "No match URL provided" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
	if rep.calls != 0 {
		t.Fatal("generator must not be called")
	}
}

func TestProcessErrorStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidMatchURL, http.StatusBadRequest},
		{fmt.Errorf("%w: abc", service.ErrMatchNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: status ONGOING", service.ErrMatchNotFinished), http.StatusConflict},
		{service.ErrCompetitionNotAllowed, http.StatusForbidden},
		{fmt.Errorf("%w: boom", service.ErrUpstream), http.StatusBadGateway},
		{errors.New("anything else"), http.StatusBadGateway},
	}
	for _, tt := range tests {
		rec := postForm(newTestServer(&stubReports{err: tt.err}, stubBoards{}), url.Values{"match_url": {"u"}}, nil)
		if rec.Code != tt.want {
			t.Fatalf("%v: expected %d, got %d", tt.err, tt.want, rec.Code)
		}
		if decodeBody(t, rec)["error"] != tt.err.Error() {
			t.Fatalf("error message must be returned, got %s", rec.Body.String())
		}
	}
}

func TestLeaderboardETag(t *testing.T) {
	sum := leaderboard.Summary{
		Leaderboards: map[string]leaderboard.Week{"week1": {TotalParticipants: 3}},
		Transfers:    map[string][]leaderboard.PlayerPick{},
		Stages:       map[string][]string{"Stage 2 Regular Season": {"week1"}},
	}
	h := newTestServer(&stubReports{}, stubBoards{sum: sum})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard-data", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("expected etag")
	}
	body := decodeBody(t, rec)
	if _, ok := body["leaderboards"].(map[string]any)["week1"]; !ok {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/leaderboard-data", nil)
	req.Header.Set("If-None-Match", etag)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotModified || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 304, got %d", rec.Code)
	}
}

func TestLeaderboardError(t *testing.T) {
	h := newTestServer(&stubReports{}, stubBoards{err: errors.New("no dir")}, WithLeaderboardDir("/nope"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/leaderboard-data", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "no dir" || body["leaderboard_path"] != "/nope" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestHealth(t *testing.T) {
	dir := t.TempDir()
	srv := New(&stubReports{}, stubBoards{}, WithLeaderboardDir(dir))
	srv.now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	body := decodeBody(t, rec)
	if body["status"] != "healthy" || body["timestamp"] != "2024-05-01T12:00:00Z" || body["leaderboard_exists"] != true {
		t.Fatalf("unexpected health %v", body)
	}
}

func TestWebhookDisabledWithoutSecret(t *testing.T) {
	h := newTestServer(&stubReports{}, stubBoards{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/faceit/webhook", strings.NewReader(`{}`)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWebhookRejectsBadSecret(t *testing.T) {
	h := newTestServer(&stubReports{}, stubBoards{}, WithWebhook("s3cret", func(context.Context, string, string) {
		t.Error("callback must not run")
	}))
	req := httptest.NewRequest(http.MethodPost, "/faceit/webhook", strings.NewReader(`{}`))
	req.Header.Set(webhookHeader, "nope")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestWebhookDispatchesMatchEvents(t *testing.T) {
	var mu sync.Mutex
	var gotID, gotStatus string
	done := make(chan struct{})
	h := newTestServer(&stubReports{}, stubBoards{}, WithWebhook("s3cret", func(ctx context.Context, id, status string) {
		mu.Lock()
		gotID, gotStatus = id, status
		mu.Unlock()
		close(done)
	}))

	req := httptest.NewRequest(http.MethodPost, "/faceit/webhook",
		strings.NewReader(`{"event":"match_status_finished","payload":{"id":"1-abc"}}`))
	req.Header.Set(webhookHeader, "s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("callback not called")
	}
	mu.Lock()
	defer mu.Unlock()
	if gotID != "1-abc" || gotStatus != "finished" {
		t.Fatalf("unexpected event %s/%s", gotID, gotStatus)
	}
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	h := newTestServer(&stubReports{}, stubBoards{}, WithWebhook("s3cret", func(context.Context, string, string) {
		t.Error("callback must not run")
	}))
	req := httptest.NewRequest(http.MethodPost, "/faceit/webhook",
		strings.NewReader(`{"type":"hub_user_added","data":{"user_id":"u1"}}`))
	req.Header.Set(webhookHeader, "s3cret")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestWebhookSyncEvents(t *testing.T) {
	called := false
	h := newTestServer(&stubReports{}, stubBoards{}, WithSyncEvents(), WithWebhook("s3cret", func(ctx context.Context, id, status string) {
		called = id == "1-abc" && status == "FINISHED"
	}))
	req := httptest.NewRequest(http.MethodPost, "/faceit/webhook",
		strings.NewReader(`{"type":"match_status_finished","data":{"match_id":"1-abc","status":"FINISHED"}}`))
	req.Header.Set(webhookHeader, "s3cret")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !called {
		t.Fatal("sync callback must run before the response")
	}
}
