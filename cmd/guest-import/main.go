package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"wedding-registry-go/internal/app"
	"wedding-registry-go/internal/config"
	guestsdomain "wedding-registry-go/internal/domain/guests"
	"wedding-registry-go/internal/importer"
	platformredis "wedding-registry-go/internal/platform/redis"
	rediscache "wedding-registry-go/internal/repository/redis"
	"wedding-registry-go/pkg/logger"
)

func main() {
	var (
		file   string
		dryRun bool
		report bool
	)
	flag.StringVar(&file, "file", "", "Guest list to import (.json or .csv with name, family_group, side)")
	flag.BoolVar(&dryRun, "dry-run", false, "Validate and summarise without touching the database")
	flag.BoolVar(&report, "report", false, "Print the family group breakdown and duplicate names")
	flag.Parse()

	log := logger.NewFromEnv()
	if file == "" {
		fmt.Fprintln(os.Stderr, "guest-import: -file is required")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, log, os.Stdout, file, dryRun, report); err != nil {
		log.Critical("import: failed", "err", err, "file", file)
		os.Exit(1)
	}
}

func run(ctx context.Context, log logger.Logger, out io.Writer, file string, dryRun, report bool) error {
	entries, err := importer.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}
	log.Info("import: read guest list", "file", file, "rows", len(entries))

	if dryRun {
		directory, err := guestsdomain.BuildDirectory(entries, uuid.NewString)
		if err != nil {
			return err
		}
		printSummary(out, guestsdomain.Summarize(directory), true)
		if report {
			printReport(out, guestsdomain.BuildReport(directory))
		}
		return nil
	}

	cfg, err := config.Load(log)
	if err != nil {
		return err
	}
	if cfg.Store != config.StorePostgres {
		return errors.New("STORE_DRIVER must be postgres to import; use -dry-run to validate a file")
	}

	stores, err := app.OpenStores(cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error("import: close store failed", "err", err)
		}
	}()

	opts := []guestsdomain.Option{guestsdomain.WithLogger(log)}
	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("import: close redis failed", "err", err)
			}
		}()
		// The API instances share this key; drop it so they reload the new list.
		opts = append(opts, guestsdomain.WithCache(rediscache.NewDirectoryCache(redisClient, log), cfg.Redis.DirectoryTTL))
	}

	return importGuests(ctx, out, guestsdomain.NewService(stores.Guests, opts...), entries, report)
}

func importGuests(ctx context.Context, out io.Writer, service *guestsdomain.Service, entries []guestsdomain.ImportEntry, report bool) error {
	summary, err := service.ImportDirectory(ctx, entries, false)
	if err != nil {
		return err
	}
	printSummary(out, summary, false)

	if report {
		grouping, err := service.GroupingReport(ctx)
		if err != nil {
			return err
		}
		printReport(out, grouping)
	}
	return nil
}
