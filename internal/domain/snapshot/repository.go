package snapshot

import "context"

// Repository persists the single dashboard document.
type Repository interface {
	// Load returns found=false when no previous document exists.
	Load(ctx context.Context) (doc Document, found bool, err error)
	Save(ctx context.Context, doc Document) error
}
