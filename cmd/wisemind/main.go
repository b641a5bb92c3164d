package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alexanderramin/wisemind/internal/api"
	"github.com/alexanderramin/wisemind/internal/cli"
	"github.com/alexanderramin/wisemind/internal/config"
	"github.com/alexanderramin/wisemind/internal/db"
	"github.com/alexanderramin/wisemind/internal/devserver"
	"github.com/alexanderramin/wisemind/internal/repository"
	"github.com/alexanderramin/wisemind/internal/service"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", service.NormalizeError(err).Message)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dir, err := config.Dir()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Local state: the stored session token.
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	tokens := repository.NewSQLiteTokenRepo(database)

	// Client diagnostics go to a rotated file unless call logging is on.
	var logOut io.Writer = &lumberjack.Logger{
		Filename:   filepath.Join(dir, "logs", "client.log"),
		MaxSize:    5,
		MaxBackups: 2,
		MaxAge:     14,
	}
	logLevel := slog.LevelError
	if cfg.LogCalls {
		logOut = os.Stderr
		logLevel = slog.LevelDebug
	}

	client := api.NewClient(api.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	}, tokens, api.NewLogObserver(logOut, logLevel))

	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	observer := service.NewSlogUseCaseObserver(logger)

	app := &cli.App{
		Profile:    service.NewProfileService(client, observer),
		Onboarding: service.NewOnboardingService(client, tokens, observer),
		Checkins:   service.NewCheckinService(client, observer),
		Plan:       service.NewPlanService(client, observer),
		State:      client,
		Logger:     logger,
		Serve: func(ctx context.Context) error {
			return serve(ctx, cfg)
		},
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
		MarkdownStyle: os.Getenv("GLAMOUR_STYLE"),
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

// serve runs the development API server on its own database.
func serve(ctx context.Context, cfg config.Config) error {
	logger := devserver.NewLogger(os.Stderr, cfg.Server.LogFile)
	defer func() { _ = logger.Sync() }()

	secret := cfg.Server.JWTSecret
	if secret == "" {
		return fmt.Errorf("set WISEMIND_JWT_SECRET or server.jwt_secret in the config file")
	}

	database, err := db.OpenDB(cfg.Server.DBPath)
	if err != nil {
		return fmt.Errorf("opening server database: %w", err)
	}
	defer database.Close()

	srv, err := devserver.New(database, devserver.Options{
		JWTSecret: secret,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}
