// Package images stores profile image blobs. The default backend keeps the
// blob next to the user row; an S3-compatible backend is available for
// deployments that keep binary payloads out of the database.
package images

import "context"

// Store persists at most one profile image per user. Get returns
// common.ErrorNotFound when no image has been stored.
type Store interface {
	Put(ctx context.Context, userID string, data []byte, contentType string) error
	Get(ctx context.Context, userID string) (data []byte, contentType string, err error)
}
