package dataservice

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-wellness-timeline/internal/domain/timeline"
	"pet-wellness-timeline/internal/platform/httpclient"
	"pet-wellness-timeline/internal/platform/logger"

	"golang.org/x/sync/errgroup"
)

var (
	ErrNotConfigured = errors.New("data-service client not configured")
	ErrUnauthorized  = errors.New("data-service unauthorized")
	ErrUpstream      = errors.New("data-service upstream error")
)

// Config del backend gestionado que guarda los registros de bienestar.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío se usa "X-Api-Key".
	APIKeyHeader string
	Timeout      time.Duration

	Logger logger.Logger
}

// Client implementa timeline.Repository contra el data-service.
// Cada colección es un GET independiente; se piden en paralelo y el
// resultado se entrega como un único snapshot.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.BaseURL), cfg.Timeout)
	if err != nil {
		return nil, err
	}
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	hc.Headers = map[string]string{h: strings.TrimSpace(cfg.APIKey)}

	if cfg.Logger != nil {
		hc.Log = cfg.Logger.With(map[string]any{"component": "dataservice"})
	}

	return &Client{http: hc}, nil
}

func (c *Client) LoadSources(ctx context.Context, petID string) (timeline.Sources, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return timeline.Sources{}, nil
	}
	base := "/v1/pets/" + url.PathEscape(petID)

	var src timeline.Sources
	g, gctx := errgroup.WithContext(ctx)

	// cada goroutine escribe un campo distinto de src
	fetch := func(collection string, out any) {
		g.Go(func() error {
			err := c.get(gctx, base+"/"+collection, out)
			if errors.Is(err, errNoContent) {
				return nil
			}
			return err
		})
	}
	fetch("activities", &src.Activities)
	fetch("meals", &src.Meals)
	fetch("weights", &src.Weights)
	fetch("grooming-schedules", &src.Grooming)
	fetch("vet-visits", &src.VetVisits)
	fetch("vaccinations", &src.Vaccinations)
	fetch("checkups", &src.Checkups)
	fetch("treatments", &src.Treatments)
	fetch("treats", &src.Treats)

	g.Go(func() error {
		var plan timeline.NutritionPlan
		err := c.get(gctx, base+"/nutrition-plan", &plan)
		if errors.Is(err, errNoContent) {
			return nil
		}
		if err != nil {
			return err
		}
		src.NutritionPlan = &plan
		return nil
	})

	if err := g.Wait(); err != nil {
		return timeline.Sources{}, err
	}
	return src, nil
}

var errNoContent = errors.New("no content")

func (c *Client) get(ctx context.Context, path string, out any) error {
	err := c.http.GetJSON(ctx, path, nil, out)
	switch {
	case err == nil:
		return nil
	case httpclient.IsStatus(err, http.StatusNotFound):
		// plan inexistente o mascota sin registros en esa colección
		return errNoContent
	case httpclient.IsStatus(err, http.StatusUnauthorized), httpclient.IsStatus(err, http.StatusForbidden):
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: %s: %v", ErrUpstream, path, err)
	}
}
