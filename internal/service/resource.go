package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// crud wraps a collection with id validation and not-found mapping.
type crud[T any, PT repository.EntityPtr[T]] struct {
	coll     repository.Collection[T]
	resource string
}

func newCrud[T any, PT repository.EntityPtr[T]](coll repository.Collection[T], resource string) crud[T, PT] {
	return crud[T, PT]{coll: coll, resource: resource}
}

func (c crud[T, PT]) list(ctx context.Context, q repository.PageQuery) ([]T, error) {
	items, err := c.coll.List(ctx, q)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (c crud[T, PT]) count(ctx context.Context) (int64, error) {
	n, err := c.coll.Count(ctx)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return n, nil
}

func (c crud[T, PT]) get(ctx context.Context, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	doc, err := c.coll.FindByID(ctx, id)
	if err != nil {
		return nil, c.mapErr(err, id)
	}
	return doc, nil
}

func (c crud[T, PT]) first(ctx context.Context) (*T, error) {
	doc, err := c.coll.FindFirst(ctx)
	if err != nil {
		return nil, c.mapErr(err, "")
	}
	return doc, nil
}

func (c crud[T, PT]) insert(ctx context.Context, doc *T) error {
	if err := c.coll.Insert(ctx, doc); err != nil {
		return apperrors.NewInternalError(err)
	}
	return nil
}

func (c crud[T, PT]) replace(ctx context.Context, doc *T) error {
	if err := c.coll.Replace(ctx, doc); err != nil {
		return c.mapErr(err, PT(doc).EntityMeta().ID)
	}
	return nil
}

func (c crud[T, PT]) remove(ctx context.Context, id string) (*T, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}
	doc, err := c.coll.Delete(ctx, id)
	if err != nil {
		return nil, c.mapErr(err, id)
	}
	return doc, nil
}

func (c crud[T, PT]) mapErr(err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		details := map[string]any{}
		if id != "" {
			details["id"] = id
		}
		return apperrors.NewNotFound(c.resource, details)
	}
	return apperrors.NewInternalError(err)
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.NewBadRequest("INVALID_ID", "invalid id format")
	}
	return nil
}

// saveWithImage resolves the image input, runs write with the reference to
// store and cleans up afterwards: a fresh upload is released when write
// fails, and a replaced owned asset is deleted when write succeeds.
func saveWithImage(
	ctx context.Context,
	resolver *media.Resolver,
	in media.Input,
	constraints media.Constraints,
	current domain.MediaReference,
	write func(ref domain.MediaReference) error,
) error {
	ref, supplied, err := resolver.Resolve(ctx, in, constraints)
	if err != nil {
		return err
	}

	next := current
	if supplied {
		next = media.Keep(current, ref)
	}

	if err := write(next); err != nil {
		if supplied && next.Owned() && next.ExternalID != current.ExternalID {
			resolver.Release(ctx, next)
		}
		return err
	}

	if supplied {
		resolver.Supersede(ctx, current, next)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
