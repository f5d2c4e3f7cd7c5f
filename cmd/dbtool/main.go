package main

import (
	"context"
	"database/sql"
	"log"
	"warehouse-cost-service/internal/adapters/repositories"
	"warehouse-cost-service/internal/config"
	"warehouse-cost-service/internal/platform/db"

	"github.com/joho/godotenv"
)

// dbtool creates the catalog schema and seeds it from CATALOG_PATH.
// DATABASE_URL selects Postgres; without it the SQLite file at DB_PATH is used.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	ctx := context.Background()

	var (
		sqlDB   *sql.DB
		dialect repositories.Dialect
		err     error
	)
	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		dialect = repositories.DialectPostgres
		sqlDB, err = db.Open(ctx, databaseURL)
	} else {
		dialect = repositories.DialectSQLite
		sqlDB, err = db.OpenSQLite(ctx, config.Get("DB_PATH", "data/app.db"))
	}
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	seedPath := config.Get("CATALOG_PATH", "data/seeds/catalog.json")
	if err := initAndSeed(ctx, sqlDB, dialect, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, dialect repositories.Dialect, seedPath string) error {
	log.Printf("Initializing database schema dialect=%s...", dialect)
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return err
	}
	log.Println("Schema ready.")

	log.Printf("Seeding catalog from %s...", seedPath)
	if err := repositories.SeedFromFile(ctx, sqlDB, dialect, seedPath); err != nil {
		return err
	}

	cat, err := repositories.NewSQLCatalogRepository(sqlDB, dialect).LoadCatalog(ctx)
	if err != nil {
		return err
	}
	log.Printf("Seeding complete. hub=%s centers=%d items=%d", cat.Hub, len(cat.Centers), len(cat.Items))

	return nil
}
