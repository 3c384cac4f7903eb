package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avolkaev/cinema-booking-system/internal/domain"
	"github.com/avolkaev/cinema-booking-system/internal/repository"
	appvalidator "github.com/avolkaev/cinema-booking-system/internal/validator"
	"github.com/avolkaev/cinema-booking-system/internal/vcs"
	"github.com/avolkaev/cinema-booking-system/migrations"
	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxstd "github.com/jackc/pgx/v5/stdlib"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/shopspring/decimal"
)

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	db        *pgxpool.Pool
	redis     redis.UniversalClient
	validator *validator.Validate

	movieRepo   domain.MovieRepository
	hallRepo    domain.HallRepository
	sessionRepo domain.SessionRepository
	ticketRepo  domain.TicketRepository
	adminRepo   domain.AdminRepository
}

type Config struct {
	Port    int
	Env     string
	DB      DBConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Pricing PricingConfig

	OtelCollectorUrl string
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

// PricingConfig carries the baseline prices newly created halls start with.
type PricingConfig struct {
	DefaultRegular decimal.Decimal
	DefaultVip     decimal.Decimal
}

func Run() error {
	var cfg Config

	flag.IntVar(&cfg.Port, "port", 5000, "server port")
	flag.StringVar(&cfg.Env, "env", "dev", "Environment (dev|staging|prod)")

	flag.StringVar(&cfg.DB.DSN, "db-dsn", "", "PostgreSQL DSN")
	flag.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", 25, "PostgreSQL max open connections")
	flag.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", 15*time.Minute, "PostgreSQL max idle time for connections")

	flag.StringVar(&cfg.Redis.URL, "redis-url", "", "Redis URL (empty disables the catalog cache)")
	flag.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", 25, "Redis max open connections")
	flag.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", 10, "Redis max idle connections")
	flag.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", 2*time.Minute, "Redis max idle time for connections")

	flag.StringVar(&cfg.JWT.Secret, "jwt-secret", "", "Secret used to sign admin tokens")
	flag.DurationVar(&cfg.JWT.Expiry, "jwt-expiry", time.Hour, "Admin token lifetime")

	regularPrice := flag.Float64("default-regular-price", 300, "Default regular seat price for new halls")
	vipPrice := flag.Float64("default-vip-price", 500, "Default VIP seat price for new halls")

	flag.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", "", "OpenTelemetry collector URL")

	runMigrations := flag.Bool("migrate", false, "Apply database migrations on startup")
	displayVersion := flag.Bool("version", false, "Display version and exit")

	flag.Parse()

	cfg.Pricing.DefaultRegular = decimal.NewFromFloat(*regularPrice)
	cfg.Pricing.DefaultVip = decimal.NewFromFloat(*vipPrice)

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if *runMigrations {
		err := Migrate(cfg.DB.DSN)
		if err != nil {
			return err
		}

		logger.Info("database migrations applied")
	}

	app, err := New(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	shutdownTelemetry, err := app.InitTelemetry()
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	return app.serve()
}

// New wires the application from its configuration: database pool, optional
// redis client, validator and repositories.
func New(cfg Config, logger *slog.Logger) (*Application, error) {
	db, err := newDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	var redisClient redis.UniversalClient

	if cfg.Redis.URL != "" {
		redisClient, err = newRedisClient(cfg)
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	app := &Application{
		config:      cfg,
		logger:      logger,
		db:          db,
		redis:       redisClient,
		validator:   appvalidator.NewValidator(),
		movieRepo:   repository.NewPostgresMovieRepository(db),
		hallRepo:    repository.NewPostgresHallRepository(db),
		sessionRepo: repository.NewPostgresSessionRepository(db),
		ticketRepo:  repository.NewPostgresTicketRepository(db),
		adminRepo:   repository.NewPostgresAdminRepository(db),
	}

	return app, nil
}

func (app *Application) Close() {
	if app.redis != nil {
		app.redis.Close()
	}

	app.db.Close()
}

// Migrate applies the embedded schema migrations against the given DSN.
func Migrate(dsn string) error {
	config, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}

	db := pgxstd.OpenDB(*config)
	defer db.Close()

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("pgx migration driver error: %w", err)
	}

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("migration source error: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("migrate.New error: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

func newRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err := rdb.Ping(ctx).Err()
	if err != nil {
		return nil, err
	}

	return rdb, nil
}

func newDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		err := srv.Shutdown(ctx)
		if err != nil {
			shutdownError <- err
		}

		shutdownError <- nil
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(otelchi.Middleware("cinema-booking-api", otelchi.WithChiRoutes(r)))
	r.Use(app.recoverPanic)
	r.Use(app.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Get("/healthcheck", app.GetHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", app.RegisterAdmin)
			r.Post("/login", app.Login)
			r.Post("/refresh-token", app.RefreshToken)
		})

		r.Get("/movies", app.GetMovies)
		r.Post("/movies", app.CreateMovie)
		r.Get("/moviesdate", app.GetMoviesByDate)

		r.Get("/session", app.GetSessionDetail)
		r.Get("/sessions", app.GetSessions)
		r.Get("/sessions/by-date", app.GetSessionsByDate)

		r.Post("/update-seats", app.ClaimSeats)

		r.Get("/halls", app.GetHalls)
		r.Get("/halls/{id}", app.GetHallSeatMap)

		r.Group(func(r chi.Router) {
			r.Use(app.requireAuthentication)

			r.Put("/sessions", app.UpdateSessionTimes)
			r.Post("/sessions", app.CreateSessions)
			r.Delete("/sessions/{id}", app.DeleteSession)
			r.Post("/sessions/status", app.UpdateSessionsStatusByHall)
			r.Post("/sessions/{id}/status", app.UpdateSessionStatus)

			r.Post("/halls", app.CreateHall)
			r.Delete("/halls/{id}", app.DeleteHall)
			r.Post("/halls/{id}/config", app.UpdateHallSeatMap)
			r.Post("/halls/{id}/prices", app.UpdateHallPrices)
		})
	})

	return r
}
