package sites

import (
	"context"
	"sort"
	"sync"

	"github.com/sitenexus/sitenexus/internal/common"
)

// InMemoryRepository is a map-backed Repository used by tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	sites map[int64]*Site
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{sites: make(map[int64]*Site)}
}

func copySite(s *Site) *Site {
	c := *s
	c.Inventory = append([]InventoryItem(nil), s.Inventory...)
	return &c
}

func (r *InMemoryRepository) Create(ctx context.Context, site *Site) (*Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sites[site.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.sites[site.ID] = copySite(site)
	return site, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id int64) (*Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sites[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	return copySite(s), nil
}

func (r *InMemoryRepository) ListByOwner(ctx context.Context, ownerID string) ([]*Site, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*Site{}
	for _, s := range r.sites {
		if s.OwnerID == ownerID {
			result = append(result, copySite(s))
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	return result, nil
}

func (r *InMemoryRepository) ReplaceInventory(ctx context.Context, id int64, inventory []InventoryItem) (*Site, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sites[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	s.Inventory = append([]InventoryItem(nil), inventory...)
	return copySite(s), nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sites[id]; !ok {
		return common.ErrorNotFound
	}

	delete(r.sites, id)
	return nil
}
