package main

import (
	"context"
	"flag"
	"log"
	"time"

	"pharmaflux/internal/app"
	"pharmaflux/internal/config"
	"pharmaflux/internal/database/migration"
	"pharmaflux/internal/database/seeder"
)

func main() {
	dir := flag.String("dir", "migrations", "directory containing .sql migration files")
	seed := flag.Bool("seed", false, "load demo data after migrating")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall migration timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg)
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	r := migration.Runner{Dir: *dir}
	if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("migrations applied")

	if *seed {
		s := seeder.Runner{Seeders: seeder.Defaults()}
		if err := s.Run(ctx, c.DB); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
		log.Println("demo data seeded")
	}
}
