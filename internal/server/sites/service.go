package sites

import (
	"context"
	"fmt"
)

// Service implements construction-site record operations. Ownership is fixed
// at creation: Create always stamps the authenticated caller as the owner,
// and ListOwned only ever returns the caller's records. Reads, inventory
// replacement and deletion by id are not owner-scoped, matching the API
// contract.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new record owned by the calling user. The record id comes
// from the caller, not the store.
func (s *Service) Create(ctx context.Context, ownerID string, site *Site) (*Site, error) {

	site.OwnerID = ownerID
	if site.Inventory == nil {
		site.Inventory = []InventoryItem{}
	}

	site, err := s.repo.Create(ctx, site)
	if err != nil {
		return nil, fmt.Errorf("error creating site: %w", err)
	}

	return site, nil
}

// ListOwned returns all records owned by the given user.
func (s *Service) ListOwned(ctx context.Context, ownerID string) ([]*Site, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Site, error) {
	return s.repo.GetByID(ctx, id)
}

// ReplaceInventory swaps the whole stock list of a record and returns the
// updated record.
func (s *Service) ReplaceInventory(ctx context.Context, id int64, inventory []InventoryItem) (*Site, error) {
	return s.repo.ReplaceInventory(ctx, id, inventory)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
