package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/coursedraft/internal/assets"
	"github.com/alexanderramin/coursedraft/internal/cli"
	"github.com/alexanderramin/coursedraft/internal/config"
	"github.com/alexanderramin/coursedraft/internal/courseapi"
	"github.com/alexanderramin/coursedraft/internal/curriculum"
	"github.com/alexanderramin/coursedraft/internal/db"
	"github.com/alexanderramin/coursedraft/internal/draft"
	"github.com/alexanderramin/coursedraft/internal/logger"
	"github.com/alexanderramin/coursedraft/internal/persist"
	"github.com/alexanderramin/coursedraft/internal/repository"
	"github.com/alexanderramin/coursedraft/internal/validate"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel, cfg.IsDevelopment())

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Save history
	saveLog := repository.NewSQLiteSaveLogRepo(database)
	recorder := repository.NewHistoryRecorder(db.NewSQLiteUnitOfWork(database), repository.DefaultHistoryKeep)

	api := courseapi.NewClient(courseapi.Config{
		BaseURL: cfg.APIBaseURL,
		Token:   cfg.APIToken,
	}, log)

	editor := curriculum.NewEditor(nil)
	store := draft.NewStore(editor)
	validator := validate.New()
	observer := persist.MultiObserver{
		persist.NewLogObserver(log),
		persist.NewHistoryObserver(recorder, log),
	}

	app := &cli.App{
		Store:       store,
		Editor:      editor,
		Validator:   validator,
		Coordinator: persist.New(store, validator, api, observer),
		Categories:  api,
		History:     saveLog,
		Log:         log,
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	if assetCfg := cfg.Assets(); assetCfg.Enabled() {
		client, err := assets.NewS3Client(ctx, assetCfg)
		if err != nil {
			return fmt.Errorf("configuring media uploads: %w", err)
		}
		app.Uploader = assets.NewUploader(client, assetCfg, log)
	} else {
		log.Debug().Msg("media uploads disabled")
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
