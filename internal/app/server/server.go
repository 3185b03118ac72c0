package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"workhub/internal/domain/attendance"
	"workhub/internal/domain/directory"
	"workhub/internal/domain/events"
	"workhub/internal/domain/groups"
	"workhub/internal/domain/reports"
	"workhub/internal/domain/rooms"
	"workhub/internal/platform/config"
	"workhub/internal/platform/db"
	"workhub/internal/session"
	adminshandler "workhub/internal/transport/http/handlers/admins"
	attendancehandler "workhub/internal/transport/http/handlers/attendance"
	authhandler "workhub/internal/transport/http/handlers/auth"
	bookingshandler "workhub/internal/transport/http/handlers/bookings"
	employeeshandler "workhub/internal/transport/http/handlers/employees"
	eventshandler "workhub/internal/transport/http/handlers/events"
	groupshandler "workhub/internal/transport/http/handlers/groups"
	participationshandler "workhub/internal/transport/http/handlers/participations"
	reportshandler "workhub/internal/transport/http/handlers/reports"
	roomshandler "workhub/internal/transport/http/handlers/rooms"
	"workhub/internal/transport/http/middleware"

	"github.com/jackc/pgx/v5/pgxpool"
)

type App struct {
	Config   config.Config
	DB       *pgxpool.Pool
	Sessions session.Store
	Router   http.Handler
}

// New builds a fully wired application. The caller owns the pool and must
// Close it.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		dir := cfg.MigrationsDir
		if dir == "" {
			dir = "migrations"
		}
		if err := db.Migrate(ctx, pool, dir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	sessions := newSessionStore(cfg)

	app := &App{
		Config:   cfg,
		DB:       pool,
		Sessions: sessions,
	}
	app.Router = buildRouter(cfg, pool, sessions)
	return app, nil
}

// newSessionStore picks Redis when an address is configured, otherwise the
// in-process store. Single-instance deployments and tests take the latter.
func newSessionStore(cfg config.Config) session.Store {
	if cfg.RedisAddr == "" {
		return session.NewMemoryStore(cfg.SessionTTL)
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return session.NewRedisStore(client, cfg.SessionTTL)
}

func buildRouter(cfg config.Config, pool *pgxpool.Pool, sessions session.Store) http.Handler {
	directorySvc := directory.NewService(directory.NewStore(pool))
	eventsSvc := events.NewService(events.NewStore(pool))
	roomsSvc := rooms.NewService(rooms.NewStore(pool))
	attendanceSvc := attendance.NewService(attendance.NewStore(pool))
	groupsSvc := groups.NewService(groups.NewStore(pool))
	reportsSvc := reports.NewService(reports.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	router.Use(middleware.Session(sessions, cfg.SessionCookie))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api", func(r chi.Router) {
		authhandler.NewHandler(directorySvc, sessions, cfg.SessionCookie, cfg.SessionTTL, cfg.CookieSecure).RegisterRoutes(r)
		employeeshandler.NewHandler(directorySvc).RegisterRoutes(r)
		adminshandler.NewHandler(directorySvc).RegisterRoutes(r)
		eventshandler.NewHandler(eventsSvc).RegisterRoutes(r)
		participationshandler.NewHandler(eventsSvc).RegisterRoutes(r)
		roomshandler.NewHandler(roomsSvc).RegisterRoutes(r)
		bookingshandler.NewHandler(roomsSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
		groupshandler.NewHandler(groupsSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return router
}

func (a *App) Close() {
	a.DB.Close()
}

func (a *App) Run() error {
	log.Printf("workhub server listening on %s", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
