package main

import (
	"context"
	"os"

	"go-catalog-api/internal/config"
	"go-catalog-api/internal/repository"
	"go-catalog-api/internal/service"
	"go-catalog-api/pkg/database"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

// purge-products removes every product and image, e.g. before reseeding a
// development database.
func main() {
	confirm := flag.BoolP("yes", "y", false, "confirm that every product and image should be deleted")
	flag.Parse()

	log := logrus.New()
	log.SetOutput(os.Stdout)

	if !*confirm {
		log.Fatal("Refusing to purge the catalog without --yes")
	}

	// 1. Load Env
	cfg, err := config.Load(log)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.Level())

	// 2. Setup Database
	db, err := database.ConnectDB(database.Config{
		DSN:             cfg.DSN(),
		LogLevel:        cfg.DBLogLevel,
		SlowThreshold:   cfg.DBSlowThreshold,
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
	}, log)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// 3. Purge
	svc := service.NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewImageRepo(db),
		repository.NewTransactor(db),
		nil,
		log,
		service.Options{},
	)
	removed, err := svc.DeleteAllProducts(context.Background())
	if err != nil {
		log.Fatalf("Failed to purge catalog: %v", err)
	}

	log.Infof("Removed %d products and their images", removed)
}
