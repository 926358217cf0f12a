// Package mail delivers transactional email through an external provider.
// The core only depends on the Sender interface; delivery failures are the
// caller's to surface.
package mail

import "context"

// Sender sends a password-reset email containing the given link.
type Sender interface {
	SendPasswordReset(ctx context.Context, to string, link string) error
}
