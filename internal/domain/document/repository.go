package document

import (
	"context"
	"io"
	"time"
)

type Repository interface {
	Create(ctx context.Context, d *Document) error
	GetByDocumentID(ctx context.Context, documentID string) (*Document, error)
	// Newest upload first.
	ListByOwner(ctx context.Context, ownerID string) ([]Document, error)
	// Every owner, newest upload first. An empty status matches all.
	ListAll(ctx context.Context, status Status) ([]Document, error)
	Save(ctx context.Context, d *Document) error
	Delete(ctx context.Context, d *Document) error
}

// BlobStore holds document file contents addressed by path.
type BlobStore interface {
	Put(ctx context.Context, path, contentType string, size int64, body io.Reader) error
	Delete(ctx context.Context, path string) error
	SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error)
}
