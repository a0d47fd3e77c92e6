// Package main is the codedcode API server.
//
// @title Code_d_Code Backend API
// @version 1.0.0
// @description Contact form and membership application backend.
// @BasePath /
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"codedcode/config"
	"codedcode/internal/adapters/email"
	deliveryhttp "codedcode/internal/delivery/http"
	"codedcode/internal/delivery/http/controllers"
	"codedcode/internal/delivery/http/helpers"
	"codedcode/internal/delivery/http/middleware"
	"codedcode/internal/metrics"
	"codedcode/internal/repository/postgres"
	"codedcode/internal/services"
)

const appName = "codedcode"

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	logLevel   string
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           appName,
		Short:         "Code_d_Code contact and membership API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API (default)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create the database tables and indexes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return migrate(cmd.Context(), opts)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s version %s\n", appName, controllers.Version)
			},
		},
	)
	return cmd
}

func setup(opts options) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	logger := config.NewLogger(cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func openDB(cfg *config.Config) (*sql.DB, error) {
	return postgres.Open(cfg.Database.URL, postgres.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	})
}

func migrate(ctx context.Context, opts options) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}
	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db, cfg.Database.OperationTimeout); err != nil {
		return err
	}
	logger.Info("schema is up to date")
	return nil
}

func serve(ctx context.Context, opts options) error {
	cfg, logger, err := setup(opts)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "err", err)
		}
	}()
	if err := metrics.RegisterDBStats(db, "postgres"); err != nil {
		logger.Warn("db pool metrics not registered", "err", err)
	}

	timeout := cfg.Database.OperationTimeout
	probe := postgres.NewProbe(db, timeout)
	if err := probe.Ping(ctx); err != nil {
		if cfg.IsProduction() {
			return fmt.Errorf("database unreachable: %w", err)
		}
		logger.Warn("database unreachable, continuing without it", "err", err)
	} else {
		logger.Info("database connected")
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, timeout); err != nil {
				return err
			}
			logger.Info("schema is up to date")
		}
	}

	mailer, err := email.NewMailer(logger, email.MailerConfig{
		Provider:    cfg.Mail.Provider,
		FromAddress: cfg.Mail.FromAddress,
		FromName:    cfg.Mail.FromName,
		SES: email.SESConfig{
			Region:          cfg.Mail.AWSRegion,
			AccessKeyID:     cfg.Mail.AccessKeyID,
			SecretAccessKey: cfg.Mail.SecretAccessKey,
		},
	})
	if err != nil {
		return fmt.Errorf("configure mailer: %w", err)
	}
	notifier := services.NewNotificationService(logger, mailer, email.NewTemplateRenderer(), cfg.Mail.AdminAddress)

	contactSvc := services.NewContactService(logger, postgres.NewContactRepository(db, timeout), notifier)
	membershipSvc := services.NewMembershipService(logger, postgres.NewMembershipRepository(db, timeout), notifier)
	statsSvc := services.NewStatsService(postgres.NewStatsRepository(db, timeout))

	errs := &helpers.ErrorResponder{Logger: logger, ExposeDetail: !cfg.IsProduction()}
	routerCfg := deliveryhttp.DefaultRouterConfig()
	routerCfg.CORS = middleware.CORSConfig{AllowedOrigins: cfg.Origins(), AllowAll: cfg.IsDevelopment()}
	routerCfg.RateLimit = cfg.RateLimit.Enabled
	routerCfg.ExemptLoopback = cfg.IsDevelopment()

	handler := deliveryhttp.NewRouter(logger, routerCfg, deliveryhttp.Controllers{
		Contact:    controllers.NewContactController(logger, contactSvc, errs),
		Membership: controllers.NewMembershipController(logger, membershipSvc, errs),
		Stats:      controllers.NewStatsController(logger, statsSvc, errs),
		Health:     controllers.NewHealthController(logger, probe, cfg.Environment),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "environment", cfg.Environment, "version", controllers.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	start := time.Now()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed, forcing close", "err", err)
		_ = srv.Close()
		return err
	}
	logger.Info("server stopped", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
