package seeder

import (
	"context"

	"pharmaflux/internal/database"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}
