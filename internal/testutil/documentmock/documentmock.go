package documentmock

import (
	"context"
	"io"
	"time"

	domain "sba-portal/internal/domain/document"
)

var (
	_ domain.Repository = (*Repo)(nil)
	_ domain.BlobStore  = (*Blobs)(nil)
)

type Repo struct {
	CreateFn          func(ctx context.Context, d *domain.Document) error
	GetByDocumentIDFn func(ctx context.Context, documentID string) (*domain.Document, error)
	ListByOwnerFn     func(ctx context.Context, ownerID string) ([]domain.Document, error)
	ListAllFn         func(ctx context.Context, status domain.Status) ([]domain.Document, error)
	SaveFn            func(ctx context.Context, d *domain.Document) error
	DeleteFn          func(ctx context.Context, d *domain.Document) error
}

func (m *Repo) Create(ctx context.Context, d *domain.Document) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, d)
	}
	return nil
}

func (m *Repo) GetByDocumentID(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.GetByDocumentIDFn != nil {
		return m.GetByDocumentIDFn(ctx, documentID)
	}
	return nil, context.Canceled
}

func (m *Repo) ListByOwner(ctx context.Context, ownerID string) ([]domain.Document, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *Repo) ListAll(ctx context.Context, status domain.Status) ([]domain.Document, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, status)
	}
	return nil, nil
}

func (m *Repo) Save(ctx context.Context, d *domain.Document) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, d)
	}
	return nil
}

func (m *Repo) Delete(ctx context.Context, d *domain.Document) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, d)
	}
	return nil
}

// Blobs is a function-backed domain.BlobStore.
type Blobs struct {
	PutFn       func(ctx context.Context, path, contentType string, size int64, body io.Reader) error
	DeleteFn    func(ctx context.Context, path string) error
	SignedURLFn func(ctx context.Context, path string, ttl time.Duration) (string, error)
}

func (m *Blobs) Put(ctx context.Context, path, contentType string, size int64, body io.Reader) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, path, contentType, size, body)
	}
	return nil
}

func (m *Blobs) Delete(ctx context.Context, path string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, path)
	}
	return nil
}

func (m *Blobs) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	if m.SignedURLFn != nil {
		return m.SignedURLFn(ctx, path, ttl)
	}
	return "https://blob.test/" + path, nil
}
