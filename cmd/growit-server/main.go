package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Ayush-2302/deploy-gro/internal/config"
	"github.com/Ayush-2302/deploy-gro/internal/domain/claims"
	"github.com/Ayush-2302/deploy-gro/internal/domain/clinical"
	"github.com/Ayush-2302/deploy-gro/internal/domain/patient"
	"github.com/Ayush-2302/deploy-gro/internal/domain/patientfile"
	"github.com/Ayush-2302/deploy-gro/internal/domain/record"
	"github.com/Ayush-2302/deploy-gro/internal/domain/tat"
	"github.com/Ayush-2302/deploy-gro/internal/domain/voice"
	"github.com/Ayush-2302/deploy-gro/internal/platform/cache"
	"github.com/Ayush-2302/deploy-gro/internal/platform/db"
	"github.com/Ayush-2302/deploy-gro/internal/platform/middleware"
	"github.com/Ayush-2302/deploy-gro/internal/platform/phi"
	"github.com/Ayush-2302/deploy-gro/internal/platform/telemetry"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "growit-server",
		Short: "Patient record API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				count, err := db.NewMigrator(pool, migrationsDir(cmd, cfg)).Up(ctx)
				if err != nil {
					return fmt.Errorf("migration failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Applied %d migration(s) successfully.\n", count)
				return nil
			})
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				statuses, err := db.NewMigrator(pool, migrationsDir(cmd, cfg)).Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to get migration status: %w", err)
				}
				printStatus(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory (defaults to MIGRATIONS_DIR)")
	cmd.AddCommand(statusCmd)

	return cmd
}

func migrationsDir(cmd *cobra.Command, cfg *config.Config) string {
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		return dir
	}
	return cfg.MigrationsDir
}

func printStatus(w io.Writer, statuses []db.MigrationStatus) {
	fmt.Fprintf(w, "%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
	fmt.Fprintln(w, "---------- ---------------------------------------- ---------- --------------------")
	for _, s := range statuses {
		status, appliedAt := "pending", ""
		if s.Applied {
			status = "applied"
			if s.AppliedAt != nil {
				appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
		}
		fmt.Fprintf(w, "%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
	}
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert a demo patient with a filled-in first section",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd, func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error {
				logger := newLogger(cfg)
				svc, err := buildServices(cfg, pool, cache.Nop{}, nil, logger)
				if err != nil {
					return err
				}
				p, err := seedDemoPatient(ctx, svc)
				if err != nil {
					return fmt.Errorf("seed failed: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created demo patient %s (%s).\n", p.Name, p.ID)
				return nil
			})
		},
	}
}

func withPool(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, cfg, pool)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	var out io.Writer = os.Stdout
	if cfg.IsDev() {
		out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// services is everything the HTTP layer and the seed command share.
type services struct {
	patients    *patient.Service
	cascade     *patient.Cascade
	files       *patientfile.Service
	clinical    *clinical.Service
	claims      *claims.Service
	tat         *tat.Service
	transcriber *voice.Transcriber
	extractor   *voice.Extractor
}

func buildServices(cfg *config.Config, pool *pgxpool.Pool, store cache.Cache, metrics *telemetry.Metrics, logger zerolog.Logger) (*services, error) {
	cipher, err := phi.NewCipher(cfg.PHIEncryptionKey, logger)
	if err != nil {
		return nil, err
	}
	catalog, err := voice.LoadCatalog()
	if err != nil {
		return nil, err
	}

	tx := db.NewTxRunner(pool)
	patientRepo := patient.NewRepoPG(pool, cipher)
	tatRepo := tat.NewRepoPG(pool)
	records := record.NewResolver(record.NewStorePG(pool), patientRepo, tx, metrics)

	provider := voice.ProviderConfig{
		BaseURL: cfg.OpenAIBaseURL,
		APIKey:  cfg.OpenAIAPIKey,
		Timeout: cfg.UpstreamTimeout,
	}
	speech := provider
	speech.Model = cfg.TranscribeModel
	chat := provider
	chat.Model = cfg.OpenAIModel

	return &services{
		patients:    patient.NewService(patientRepo, records),
		cascade:     patient.NewCascade(patientRepo, records, tatRepo, tx, logger),
		files:       patientfile.NewService(records),
		clinical:    clinical.NewService(records),
		claims:      claims.NewService(records),
		tat:         tat.NewService(tatRepo, patientRepo, tx, metrics),
		transcriber: voice.NewTranscriber(speech, metrics, logger),
		extractor:   voice.NewExtractor(chat, catalog, store, cfg.ExtractionCacheTTL, metrics, logger),
	}, nil
}

// newRouter wires middleware and every route. It touches the pool only when
// a request arrives, so tests can pass nil.
func newRouter(cfg *config.Config, pool *pgxpool.Pool, svc *services, metrics *telemetry.Metrics, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	e.Use(middleware.Sanitize(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.CORSOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderXRequestID},
		ExposeHeaders: []string{"ETag", echo.HeaderXRequestID, echo.HeaderContentDisposition},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit, map[string]string{"/api/transcribe": cfg.AudioBodyLimit}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(middleware.Audit(logger))

	e.GET("/health", health)
	e.GET("/health/db", db.HealthHandler(pool))
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	api := e.Group("/api")
	api.GET("/health", health)

	patient.NewHandler(svc.patients, svc.cascade).RegisterRoutes(api)
	patientfile.NewHandler(svc.files).RegisterRoutes(api)
	clinical.NewHandler(svc.clinical).RegisterRoutes(api)
	claims.NewHandler(svc.claims).RegisterRoutes(api)
	tat.NewHandler(svc.tat).RegisterRoutes(api)
	voice.NewHandler(svc.transcriber, svc.extractor).RegisterRoutes(api, middleware.RateLimit(middleware.RateLimitConfig{
		PerSecond: cfg.VoiceRatePerSecond,
		Burst:     cfg.VoiceRateBurst,
	}))

	return e
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   version,
	})
}

func openCache(ctx context.Context, cfg *config.Config, logger zerolog.Logger) cache.Cache {
	if cfg.RedisURL == "" {
		return cache.NewMemory()
	}
	c, err := cache.NewRedis(ctx, cfg.RedisURL, "growit:")
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, using in-process extraction cache")
		return cache.NewMemory()
	}
	logger.Info().Msg("connected to redis")
	return c
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	store := openCache(ctx, cfg, logger)
	defer store.Close()

	metrics := telemetry.New()
	svc, err := buildServices(cfg, pool, store, metrics, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build services")
	}
	if !cfg.VoiceEnabled() {
		logger.Warn().Msg("OPENAI_API_KEY not set; transcription disabled and extraction will use fallbacks")
	}

	e := newRouter(cfg, pool, svc, metrics, logger)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
