package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"buildmart/internal/kv"
	"buildmart/internal/models"
	"buildmart/internal/seed"
	"buildmart/internal/storage"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	var (
		fixturesPath = flag.String("fixtures", "configs/seed.yaml", "path to seed fixtures")
		dbPath       = flag.String("db", "./data/buildmart.db", "path to sqlite db")
	)
	flag.Parse()

	fixtures, err := seed.LoadFixtures(*fixturesPath)
	if err != nil {
		return fmt.Errorf("load fixtures: %w", err)
	}
	if len(fixtures.Products) == 0 && len(fixtures.Services) == 0 {
		return fmt.Errorf("no products or services in fixtures")
	}

	kvStore, err := kv.NewSQLiteStore(*dbPath)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer kvStore.Close()

	store := storage.New(kvStore, &logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	created := 0
	updated := 0
	for _, p := range fixtures.Products {
		if p.ID == "" {
			continue
		}
		if existing, ok := store.Products().GetByID(ctx, p.ID); ok {
			// Catalog fields win, live stock count stays.
			stock := existing.Stock
			store.Products().Update(ctx, p.ID, func(dst *models.Product) {
				*dst = p
				dst.Stock = stock
			})
			updated++
			continue
		}
		if !store.Products().Add(ctx, p) {
			return fmt.Errorf("create product %s", p.ID)
		}
		created++
	}

	for _, svc := range fixtures.Services {
		if svc.ID == "" {
			continue
		}
		if _, ok := store.Services().GetByID(ctx, svc.ID); ok {
			store.Services().Update(ctx, svc.ID, func(dst *models.Service) {
				*dst = svc
			})
			updated++
			continue
		}
		if !store.Services().Add(ctx, svc) {
			return fmt.Errorf("create service %s", svc.ID)
		}
		created++
	}

	fmt.Printf("done: created=%d updated=%d\n", created, updated)
	return nil
}
