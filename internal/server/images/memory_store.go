package images

import (
	"context"
	"sync"

	"github.com/sitenexus/sitenexus/internal/common"
)

// MemoryStore is an in-memory Store used by tests and the in-memory
// repository manager.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]memoryImage
}

type memoryImage struct {
	data        []byte
	contentType string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[string]memoryImage)}
}

func (s *MemoryStore) Put(ctx context.Context, userID string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[userID] = memoryImage{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	img, ok := s.images[userID]
	if !ok || len(img.data) == 0 {
		return nil, "", common.ErrorNotFound
	}
	return img.data, img.contentType, nil
}
