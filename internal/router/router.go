package router

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"pet-wellness-timeline/internal/adapters/dataservice"
	mem "pet-wellness-timeline/internal/adapters/storage/memory"
	pg "pet-wellness-timeline/internal/adapters/storage/postgres"
	"pet-wellness-timeline/internal/adapters/storage/sqlite"
	"pet-wellness-timeline/internal/config"
	"pet-wellness-timeline/internal/domain/timeline"
	"pet-wellness-timeline/internal/middleware"
	"pet-wellness-timeline/internal/platform/logger"

	_ "pet-wellness-timeline/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	Config config.Config
	Logger logger.Logger // puede ser nil

	// Opcional: repo ya armado (tests). Tiene prioridad sobre todo lo demás.
	Repo timeline.Repository

	// Opcional: si viene, usa SQL con Config.DBDriver (default postgres).
	DB *sql.DB

	// Opcional: reloj fijo para tests.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	repo := selectRepo(opts, log)

	loc, err := opts.Config.Location()
	if err != nil {
		log.Warn("invalid timezone, using Local", map[string]any{"timezone": opts.Config.Timezone, "error": err})
		loc = time.Local
	}

	svc := timeline.NewService(repo, timeline.ServiceOptions{
		Location:     loc,
		DisplayLimit: opts.Config.DisplayLimit,
		Logger:       log,
	})
	if opts.Now != nil {
		svc.SetClock(opts.Now)
	}

	timeline.RegisterRoutes(r, svc)

	return r
}

// selectRepo: Repo explícito > DB explícita > DB_DSN > DATA_SERVICE_URL > in-memory.
func selectRepo(opts Options, log logger.Logger) timeline.Repository {
	if opts.Repo != nil {
		return opts.Repo
	}

	cfg := opts.Config
	db := opts.DB
	if db == nil && cfg.DBDSN != "" {
		opened, err := openDB(cfg)
		if err != nil {
			log.Error("db open failed, falling back", map[string]any{"driver": cfg.DBDriver, "error": err})
		} else {
			db = opened
		}
	}
	if db != nil {
		log.Info("using sql sources", map[string]any{"driver": cfg.DBDriver})
		if cfg.DBDriver == "sqlite" {
			return sqlite.NewSourcesRepo(db)
		}
		return pg.NewSourcesRepo(db)
	}

	if cfg.DataServiceURL != "" {
		client, err := dataservice.NewClient(dataservice.Config{
			BaseURL: cfg.DataServiceURL,
			APIKey:  cfg.DataServiceAPIKey,
			Timeout: cfg.DataServiceTimeout,
			Logger:  log,
		})
		if err == nil {
			log.Info("using data-service sources", map[string]any{"url": cfg.DataServiceURL})
			return client
		}
		log.Error("data-service misconfigured, falling back", map[string]any{"error": err})
	}

	log.Info("using in-memory sources", nil)
	return mem.NewSourcesRepo()
}

func openDB(cfg config.Config) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if cfg.DBDriver == "sqlite" {
		return sqlite.Open(ctx, cfg.DBDSN)
	}
	return pg.Open(ctx, cfg.DBDSN)
}
