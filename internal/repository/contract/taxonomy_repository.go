package contract

import (
	"context"

	"niche-picker-be/internal/entity"
)

type TaxonomyRepository interface {
	// Load returns the whole taxonomy in display order.
	Load(ctx context.Context) ([]entity.Industry, error)
}

// TaxonomyWriter is implemented by stores that can be seeded (cmd/migrate).
type TaxonomyWriter interface {
	ReplaceAll(ctx context.Context, industries []entity.Industry) error
}
