package timeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-wellness-timeline/internal/platform/logger"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrReadOnlySources = errors.New("sources are read-only")
)

type ServiceOptions struct {
	// Location define qué es "hoy". nil = time.Local.
	Location *time.Location
	// DisplayLimit <= 0 usa DefaultDisplayLimit.
	DisplayLimit int
	Logger       logger.Logger
}

// Service carga el snapshot desde el repo y corre Build. No guarda estado
// entre llamadas: cada request recalcula todo.
type Service struct {
	repo  Repository
	log   logger.Logger
	now   func() time.Time
	loc   *time.Location
	limit int
}

func NewService(repo Repository, opts ServiceOptions) *Service {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	limit := opts.DisplayLimit
	if limit <= 0 {
		limit = DefaultDisplayLimit
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	return &Service{
		repo:  repo,
		log:   log.With(map[string]any{"component": "timeline"}),
		now:   time.Now,
		loc:   loc,
		limit: limit,
	}
}

// SetClock fija el reloj de referencia (tests, CLI con --now).
func (s *Service) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Now es el instante de referencia de la próxima pasada, en la zona del servicio.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Timeline(ctx context.Context, petID string, showFull bool) (Result, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Result{}, ErrInvalidInput
	}

	src, err := s.repo.LoadSources(ctx, petID)
	if err != nil {
		return Result{}, fmt.Errorf("load sources: %w", err)
	}

	now := s.Now()
	res := Build(src, Options{
		Now:      now,
		ShowFull: showFull,
		Limit:    s.limit,
	})

	for _, is := range res.Issues {
		s.log.Warn("record skipped", map[string]any{
			"pet_id":    petID,
			"kind":      string(is.Kind),
			"record_id": is.RecordID,
			"error":     is.Err,
		})
	}
	s.log.Debug("timeline built", map[string]any{
		"pet_id":    petID,
		"records":   src.Len(),
		"events":    res.TotalEvents,
		"shown":     res.ShownEvents,
		"alerts":    len(res.Alerts),
		"show_full": showFull,
	})

	return res, nil
}

// Alerts siempre sale del timeline completo; showFull no cambia nada acá.
func (s *Service) Alerts(ctx context.Context, petID string) ([]UrgentAlert, error) {
	res, err := s.Timeline(ctx, petID, true)
	if err != nil {
		return nil, err
	}
	return res.Alerts, nil
}

func (s *Service) Progress(ctx context.Context, petID string) (TodayProgress, error) {
	res, err := s.Timeline(ctx, petID, true)
	if err != nil {
		return TodayProgress{}, err
	}
	return res.Progress, nil
}

// Writable indica si el repo acepta ReplaceSources.
func (s *Service) Writable() bool {
	_, ok := s.repo.(SourceWriter)
	return ok
}

func (s *Service) ReplaceSources(ctx context.Context, petID string, src Sources) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrInvalidInput
	}
	w, ok := s.repo.(SourceWriter)
	if !ok {
		return ErrReadOnlySources
	}
	if err := w.ReplaceSources(ctx, petID, src); err != nil {
		return fmt.Errorf("replace sources: %w", err)
	}
	s.log.Info("sources replaced", map[string]any{"pet_id": petID, "records": src.Len()})
	return nil
}
