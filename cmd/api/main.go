package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/clinic-api/internal/config"
	"github.com/jwalitptl/clinic-api/internal/middleware"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/repository/memory"
	"github.com/jwalitptl/clinic-api/internal/repository/postgres"
	"github.com/jwalitptl/clinic-api/internal/router"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/auth"
	"github.com/jwalitptl/clinic-api/pkg/logger"
	"github.com/jwalitptl/clinic-api/pkg/messaging"
	"github.com/jwalitptl/clinic-api/pkg/messaging/redis"
	"github.com/jwalitptl/clinic-api/pkg/metrics"
	"github.com/jwalitptl/clinic-api/pkg/security"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

var configDir string

func main() {
	rootCmd := &cobra.Command{
		Use:          "clinic-api",
		Short:        "Clinic and pharmacy records API",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(false)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yaml")

	rootCmd.AddCommand(serveCmd(), migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrate, _ := cmd.Flags().GetBool("migrate")
			return runServer(migrate)
		},
	}
	cmd.Flags().Bool("migrate", false, "apply pending migrations before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, closeDB, err := openMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			applied, err := migrator.Up(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Applied %d migration(s)\n", applied)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			migrator, closeDB, err := openMigrator(cmd.Context())
			if err != nil {
				return err
			}
			defer closeDB()

			statuses, err := migrator.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				fmt.Printf("%03d  %-30s %s\n", s.Version, s.Name, state)
			}
			return nil
		},
	})
	return cmd
}

func loadConfig() (*config.Config, error) {
	if configDir != "" {
		return config.LoadConfig(configDir)
	}
	return config.LoadConfig()
}

func openMigrator(ctx context.Context) (*postgres.Migrator, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	if cfg.Store.Driver != config.DriverPostgres {
		return nil, nil, errors.New("migrations need store.driver=postgres")
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewMigrator(db), func() { db.Close() }, nil
}

func runServer(migrate bool) error {
	cfg, err := loadConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return err
	}
	logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	defer closeStore()

	broker, err := openBroker(ctx, cfg)
	if err != nil {
		return err
	}
	defer broker.Close()

	m := metrics.New("clinic")
	secret := cfg.Auth.Secret
	if secret == "" {
		secret = randomSecret()
		log.Warn().Msg("auth.secret not set, tokens are signed with a random key and will not survive a restart")
	}

	r := router.Build(router.Dependencies{
		Store:       store,
		Validator:   validator.New(),
		Events:      event.NewPublisher(broker, cfg.Redis.Channel, log.Logger, m),
		Hasher:      security.NewBcryptHasher(cfg.Auth.BcryptCost),
		Tokens:      auth.NewJWTService(secret, cfg.Auth.TTL),
		TokenTTL:    cfg.Auth.TTL,
		Metrics:     m,
		RequireAuth: cfg.Auth.Enabled,
	}, router.RouterConfig{
		RateLimit: middleware.RateLimiterConfig{
			RPS:   cfg.RateLimit.RPS,
			Burst: cfg.RateLimit.Burst,
		},
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("store", cfg.Store.Driver).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
			return err
		}
	case <-ctx.Done():
	}
	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, migrate bool) (*repository.Store, func(), error) {
	if cfg.Store.Driver == config.DriverMemory {
		log.Warn().Msg("using the in-memory store, data is lost on exit")
		return memory.NewStore(), func() {}, nil
	}

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to database")
		return nil, nil, err
	}
	if migrate {
		applied, err := postgres.NewMigrator(db).Up(ctx)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		log.Info().Int("applied", applied).Msg("migrations applied")
	}
	return postgres.NewStore(db), func() { db.Close() }, nil
}

// openBroker falls back to an in-process broker when Redis is not configured
func openBroker(ctx context.Context, cfg *config.Config) (messaging.Broker, error) {
	if cfg.Redis.URL == "" {
		log.Info().Msg("redis.url not set, events stay in process")
		return messaging.NewMemoryBroker(), nil
	}

	broker, err := redis.NewRedisBroker(ctx, redis.Config{URL: cfg.Redis.URL}, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to Redis")
		return nil, err
	}
	return broker, nil
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
