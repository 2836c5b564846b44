package main

import (
	"context"
	"log"
	"os"
	"slices"

	"github.com/dmitrijs2005/bookshelf/internal/buildinfo"
	"github.com/dmitrijs2005/bookshelf/internal/client/cli"
	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/pages"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/client/storage"
	"github.com/dmitrijs2005/bookshelf/internal/client/transport"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	if slices.Contains(os.Args[1:], "-h") || slices.Contains(os.Args[1:], "--help") {
		config.EnvUsage(os.Stdout)
		return
	}

	ctx := context.Background()
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	store := session.NewSQLTokenStore(db)
	sess := session.New(store)

	tr, err := transport.New(cfg.BaseURL, sess,
		transport.WithTimeout(cfg.RequestTimeout),
		transport.WithLogger(logger.With("component", "transport")),
	)
	if err != nil {
		log.Fatalf("transport: %v", err)
	}

	api := client.NewHTTPClient(tr, sess, logger.With("component", "client"))

	app := cli.NewApp(cfg, cli.Services{
		Auth:    services.NewAuthService(api, sess, store, logger),
		Catalog: services.NewCatalogService(api),
		Reviews: services.NewReviewService(api),
		Shelf:   services.NewShelfService(api),
		Reader:  services.NewReaderService(api, sess, cfg.PagesDir, pages.NewSQLiteRepository(db), logger),
	}, logger)

	app.Run(ctx)

}
