package sites

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, site *Site) (*Site, error)
	GetByID(ctx context.Context, id int64) (*Site, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Site, error)
	ReplaceInventory(ctx context.Context, id int64, inventory []InventoryItem) (*Site, error)
	Delete(ctx context.Context, id int64) error
}
