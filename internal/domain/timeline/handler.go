package timeline

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets/{petID}", func(pr chi.Router) {
		pr.Get("/timeline", getTimelineHandler(svc))
		pr.Get("/timeline/alerts", listAlertsHandler(svc))
		pr.Get("/timeline/progress", getProgressHandler(svc))

		// Reemplazo de snapshot: solo repos escribibles (memory en modo dev)
		pr.Put("/sources", replaceSourcesHandler(svc))
	})
}

type metricResponse struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// eventResponse representa un evento del timeline.
type eventResponse struct {
	ID        string            `json:"id"`
	Type      EventType         `json:"type" enums:"activity,meal,weight,grooming,vet_visit,vaccination,checkup,treatment,treat,bowl_cleaning,injury"`
	Title     string            `json:"title"`
	Timestamp time.Time         `json:"timestamp"`
	Status    Status            `json:"status" enums:"completed,upcoming,overdue"`
	Metrics   []metricResponse  `json:"metrics,omitempty"`
	SourceID  string            `json:"source_id"`
	Details   any               `json:"details,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// dayResponse representa un día del timeline con su label ya resuelto.
type dayResponse struct {
	Date        string          `json:"date"` // YYYY-MM-DD
	Label       string          `json:"label"`
	IsToday     bool            `json:"is_today"`
	IsYesterday bool            `json:"is_yesterday"`
	Events      []eventResponse `json:"events"`
}

type alertResponse struct {
	Type        EventType         `json:"type"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	EventID     string            `json:"event_id"`
	DaysOverdue int               `json:"days_overdue"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// timelineResponse es la vista completa: días (posiblemente limitados), alertas y progreso.
type timelineResponse struct {
	PetID         string          `json:"pet_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	ShowFull      bool            `json:"show_full"`
	TotalEvents   int             `json:"total_events"`
	ShownEvents   int             `json:"shown_events"`
	HiddenEvents  int             `json:"hidden_events"`
	Days          []dayResponse   `json:"days"`
	Alerts        []alertResponse `json:"alerts"`
	TodayProgress TodayProgress   `json:"today_progress"`
}

// getTimelineHandler godoc
// @Summary Timeline de bienestar de una mascota
// @Description Devuelve el timeline agrupado por día. Por defecto muestra hasta 12 eventos; con `full=true` devuelve todo. Alertas y progreso de hoy siempre se calculan sobre el timeline completo.
// @Tags timeline
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Param full query bool false "Mostrar el timeline completo"
// @Success 200 {object} timelineResponse
// @Failure 400 {string} string "full inválido"
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/timeline [get]
func getTimelineHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID := chi.URLParam(r, "petID")

		showFull := false
		if v := strings.TrimSpace(r.URL.Query().Get("full")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "full must be a boolean", http.StatusBadRequest)
				return
			}
			showFull = b
		}

		res, err := svc.Timeline(r.Context(), petID, showFull)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toTimelineResponse(petID, showFull, res))
	}
}

// listAlertsHandler godoc
// @Summary Alertas urgentes
// @Description Lista los eventos vencidos ordenados por prioridad de tipo y días de atraso. No depende del límite de visualización.
// @Tags timeline
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {array} alertResponse
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/timeline/alerts [get]
func listAlertsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		alerts, err := svc.Alerts(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAlertResponses(alerts))
	}
}

// getProgressHandler godoc
// @Summary Progreso de hoy
// @Description Minutos, distancia y calorías de las actividades completadas hoy.
// @Tags timeline
// @Produce json
// @Param petID path string true "ID de la mascota"
// @Success 200 {object} TodayProgress
// @Failure 500 {string} string "internal error"
// @Router /pets/{petID}/timeline/progress [get]
func getProgressHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Progress(r.Context(), chi.URLParam(r, "petID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

// replaceSourcesHandler godoc
// @Summary Reemplazar colecciones fuente (modo dev)
// @Description Reemplaza el snapshot completo de registros de la mascota. Solo disponible con almacenamiento in-memory.
// @Tags timeline
// @Accept json
// @Param petID path string true "ID de la mascota"
// @Param payload body Sources true "Snapshot de las nueve colecciones + plan de nutrición"
// @Success 204
// @Failure 400 {string} string "invalid json"
// @Failure 405 {string} string "sources are read-only"
// @Router /pets/{petID}/sources [put]
func replaceSourcesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.Writable() {
			http.Error(w, ErrReadOnlySources.Error(), http.StatusMethodNotAllowed)
			return
		}

		var src Sources
		dec := sonic.ConfigDefault.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&src); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		if err := svc.ReplaceSources(r.Context(), chi.URLParam(r, "petID"), src); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrReadOnlySources):
		http.Error(w, err.Error(), http.StatusMethodNotAllowed)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// NewTimelineView arma el payload JSON que devuelve GET /pets/{petID}/timeline.
func NewTimelineView(petID string, showFull bool, res Result) any {
	return toTimelineResponse(petID, showFull, res)
}

// NewAlertsView arma el payload de GET /pets/{petID}/timeline/alerts.
func NewAlertsView(alerts []UrgentAlert) any {
	return toAlertResponses(alerts)
}

func toTimelineResponse(petID string, showFull bool, res Result) timelineResponse {
	days := make([]dayResponse, 0, len(res.Days))
	for _, d := range res.Days {
		days = append(days, toDayResponse(d))
	}
	return timelineResponse{
		PetID:         petID,
		GeneratedAt:   res.Now,
		ShowFull:      showFull,
		TotalEvents:   res.TotalEvents,
		ShownEvents:   res.ShownEvents,
		HiddenEvents:  res.HiddenEvents(),
		Days:          days,
		Alerts:        toAlertResponses(res.Alerts),
		TodayProgress: res.Progress,
	}
}

func toDayResponse(d Day) dayResponse {
	events := make([]eventResponse, 0, len(d.Events))
	for _, e := range d.Events {
		events = append(events, toEventResponse(e))
	}
	return dayResponse{
		Date:        d.Date.Format("2006-01-02"),
		Label:       d.Label,
		IsToday:     d.IsToday,
		IsYesterday: d.IsYesterday,
		Events:      events,
	}
}

func toEventResponse(e Event) eventResponse {
	var metrics []metricResponse
	for _, m := range e.Metrics {
		metrics = append(metrics, metricResponse{Label: m.Label, Value: m.Value})
	}
	return eventResponse{
		ID:        e.ID,
		Type:      e.Type,
		Title:     e.Title,
		Timestamp: e.Timestamp,
		Status:    e.Status,
		Metrics:   metrics,
		SourceID:  sourceID(e),
		Details:   e.Details,
		Metadata:  e.Metadata,
	}
}

func toAlertResponses(alerts []UrgentAlert) []alertResponse {
	out := make([]alertResponse, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, alertResponse{
			Type:        a.Type,
			Title:       a.Title,
			Description: a.Description,
			EventID:     a.EventID,
			DaysOverdue: a.DaysOverdue,
			Metadata:    a.Metadata,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(v)
}
