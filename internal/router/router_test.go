package router_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pet-wellness-timeline/internal/config"
	"pet-wellness-timeline/internal/router"

	"github.com/bytedance/sonic"
)

var fixedNow = time.Date(2026, 10, 19, 10, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg config.Config) *httptest.Server {
	t.Helper()
	if cfg.Timezone == "" {
		cfg.Timezone = "UTC"
	}
	ts := httptest.NewServer(router.NewRouter(router.Options{
		Config: cfg,
		Now:    func() time.Time { return fixedNow },
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_TimelineFromReplacedSources(t *testing.T) {
	ts := newTestServer(t, config.Config{DisplayLimit: 12})
	petID := "milo"

	// 1) Health
	{
		st, body := doReq(t, ts.URL, "GET", "/health", nil)
		if st != http.StatusOK || string(body) != "ok" {
			t.Fatalf("expected 200 ok, got %d body=%s", st, string(body))
		}
	}

	// 2) Mascota sin datos => timeline vacío
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/timeline", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 empty timeline, got %d body=%s", st, string(body))
		}
		resp := decodeTimeline(t, body)
		if resp.TotalEvents != 0 || len(resp.Days) != 0 {
			t.Fatalf("expected empty timeline, got %+v", resp)
		}
	}

	// 3) Cargar snapshot (modo in-memory)
	{
		st, body := doReq(t, ts.URL, "PUT", "/pets/"+petID+"/sources", map[string]any{
			"activities": []map[string]any{
				{"activity_type": "walk", "start_time": "2026-10-19T09:00:00Z", "duration_minutes": 30, "distance_km": 2.5},
			},
			"grooming": []map[string]any{
				{"id": "g1", "grooming_type": "nail_trim", "next_due_date": "2026-10-18T00:00:00Z"},
			},
			"checkups": []map[string]any{
				{"id": "c1", "checkup_date": "2026-10-01T11:00:00Z"},
			},
			"meals": []map[string]any{
				{"id": "m1", "meal_name": "Dinner", "scheduled_date": "2026-10-20", "meal_time": "18:00"},
			},
		})
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 replace sources, got %d body=%s", st, string(body))
		}
	}

	// 4) Timeline
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/timeline", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 timeline, got %d body=%s", st, string(body))
		}
		resp := decodeTimeline(t, body)
		// la comida de mañana 18:00 queda fuera del horizonte de 24h
		if resp.TotalEvents != 3 {
			t.Fatalf("expected 3 events, got %d body=%s", resp.TotalEvents, string(body))
		}
		if len(resp.Days) == 0 || resp.Days[0].Label != "Today" {
			t.Fatalf("expected Today first, got %+v", resp.Days)
		}
		if resp.TodayProgress.Minutes != 30 || resp.TodayProgress.Distance != 2.5 {
			t.Fatalf("unexpected progress %+v", resp.TodayProgress)
		}
	}

	// 5) Alertas
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/timeline/alerts", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 alerts, got %d body=%s", st, string(body))
		}
		var alerts []struct {
			Type        string `json:"type"`
			EventID     string `json:"event_id"`
			Description string `json:"description"`
		}
		_ = sonic.Unmarshal(body, &alerts)
		if len(alerts) != 1 || alerts[0].EventID != "g1" || alerts[0].Description != "1 days overdue" {
			t.Fatalf("unexpected alerts body=%s", string(body))
		}
	}

	// 6) Progreso
	{
		st, body := doReq(t, ts.URL, "GET", "/pets/"+petID+"/timeline/progress", nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 progress, got %d body=%s", st, string(body))
		}
		var p struct {
			Minutes int `json:"minutes"`
		}
		_ = sonic.Unmarshal(body, &p)
		if p.Minutes != 30 {
			t.Fatalf("expected 30 minutes, got %d", p.Minutes)
		}
	}
}

func TestHTTP_InvalidFullParam(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	st, _ := doReq(t, ts.URL, "GET", "/pets/milo/timeline?full=maybe", nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid full, got %d", st)
	}
}

func TestHTTP_SQLiteSourcesAreReadOnly(t *testing.T) {
	ts := newTestServer(t, config.Config{
		DBDriver: "sqlite",
		DBDSN:    filepath.Join(t.TempDir(), "wellness.db"),
	})

	st, body := doReq(t, ts.URL, "GET", "/pets/milo/timeline", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 from sqlite-backed timeline, got %d body=%s", st, string(body))
	}

	st, _ = doReq(t, ts.URL, "PUT", "/pets/milo/sources", map[string]any{})
	if st != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 on read-only sources, got %d", st)
	}
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	ts := newTestServer(t, config.Config{})

	st, body := doReq(t, ts.URL, "GET", "/swagger/doc.json", nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
	if !bytes.Contains(body, []byte("/pets/{petID}/timeline")) {
		t.Fatalf("swagger doc missing timeline path")
	}
}

type timelineBody struct {
	TotalEvents int `json:"total_events"`
	Days        []struct {
		Label string `json:"label"`
	} `json:"days"`
	TodayProgress struct {
		Minutes  int     `json:"minutes"`
		Distance float64 `json:"distance"`
	} `json:"today_progress"`
}

func decodeTimeline(t *testing.T, body []byte) timelineBody {
	t.Helper()
	var resp timelineBody
	if err := sonic.Unmarshal(body, &resp); err != nil {
		t.Fatalf("decode timeline: %v body=%s", err, string(body))
	}
	return resp
}

func doReq(t *testing.T, baseURL, method, path string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, _ := sonic.Marshal(payload)
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	b, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, b
}
