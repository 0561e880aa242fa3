package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alexanderramin/mintabi/internal/cli"
	"github.com/alexanderramin/mintabi/internal/config"
	"github.com/alexanderramin/mintabi/internal/db"
	"github.com/alexanderramin/mintabi/internal/feed"
	"github.com/alexanderramin/mintabi/internal/history"
	"github.com/alexanderramin/mintabi/internal/remote"
	"github.com/alexanderramin/mintabi/internal/repository"
	"github.com/alexanderramin/mintabi/internal/service"
	tmpl "github.com/alexanderramin/mintabi/internal/template"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	configPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	if p := os.Getenv("MINTABI_CONFIG"); p != "" {
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Debug logging goes to stderr only when use-case logging is on; the
	// board owns the terminal otherwise.
	var logOut io.Writer = io.Discard
	if cfg.LogUseCases {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))
	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewLogUseCaseObserver(logger))
	}

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Change feed: poll the shared database file unless Redis is configured
	var changes feed.Feed = feed.NewPoller(database, feed.DefaultPollInterval, logger)
	if cfg.RedisURL != "" {
		rf, err := feed.NewRedis(ctx, cfg.RedisURL, cfg.RedisChannelPrefix, logger)
		if err != nil {
			return err
		}
		defer rf.Close()
		changes = rf
	}

	// Wire repositories and services
	plans := repository.NewSQLitePlanRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)
	ledger := history.NewLedger(cfg.HistoryPath, cfg.HistoryLimit)
	catalog := tmpl.NewCatalog(cfg.TemplatesDir)
	channel := remote.NewChannel(plans, changes, logger)

	app := &cli.App{
		Plans:     service.NewPlanService(plans, changes, ledger, catalog, observers...),
		Boards:    service.NewBoardService(plans, channel, ledger, observers...),
		Templates: service.NewTemplateService(catalog),
		Import:    service.NewImportService(plans, uow, ledger, observers...),
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.ExecuteContext(ctx)
}
