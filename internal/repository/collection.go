package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/content-service/internal/domain"
)

// ErrNotFound is returned when no document matches the lookup.
var ErrNotFound = errors.New("document not found")

// PageQuery limits a listing. A zero Limit returns every document.
type PageQuery struct {
	Skip  int
	Limit int
}

// Collection stores documents of a single kind.
type Collection[T any] interface {
	// Insert assigns an id and timestamps and stores the document.
	Insert(ctx context.Context, doc *T) error
	FindByID(ctx context.Context, id string) (*T, error)
	// FindFirst returns the oldest document, used for singletons.
	FindFirst(ctx context.Context) (*T, error)
	// List returns documents newest-created first.
	List(ctx context.Context, q PageQuery) ([]T, error)
	Count(ctx context.Context) (int64, error)
	// Replace overwrites the stored document with the same id and bumps UpdatedAt.
	Replace(ctx context.Context, doc *T) error
	// Delete removes the document and returns what was stored.
	Delete(ctx context.Context, id string) (*T, error)
}

// EntityPtr constrains generic collections to pointers of domain entities.
type EntityPtr[T any] interface {
	*T
	domain.Entity
}

func stampNew(e domain.Entity, now time.Time) {
	meta := e.EntityMeta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	meta.CreatedAt = now
	meta.UpdatedAt = now
}

func stampUpdate(e domain.Entity, now time.Time) {
	e.EntityMeta().UpdatedAt = now
}

func utcNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
