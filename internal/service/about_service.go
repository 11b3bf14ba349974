package service

import (
	"context"
	"errors"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
	apperrors "github.com/spec-kit/content-service/pkg/util/errorutil"
)

// AboutInput carries the editable fields of the about section. Empty fields
// keep their current value on update.
type AboutInput struct {
	Text        string      `json:"text"`
	YoutubeLink string      `json:"youtubeLink" validate:"omitempty,url"`
	Image       media.Input `json:"-" validate:"-"`
}

// AboutService manages the singleton about section. Concurrent writers are
// not serialized; the last write wins.
type AboutService struct {
	items  crud[domain.About, *domain.About]
	media  *media.Resolver
	images media.Constraints
}

func NewAboutService(coll repository.Collection[domain.About], resolver *media.Resolver, maxUploadBytes int64) *AboutService {
	return &AboutService{
		items:  newCrud[domain.About](coll, "about section"),
		media:  resolver,
		images: media.AboutImages.WithMaxBytes(maxUploadBytes),
	}
}

// Get returns the about section.
func (s *AboutService) Get(ctx context.Context) (*domain.About, error) {
	return s.items.first(ctx)
}

// CreateOrUpdate creates the section when none exists, requiring an image,
// and otherwise merges the supplied fields. It reports whether it created.
func (s *AboutService) CreateOrUpdate(ctx context.Context, in AboutInput) (*domain.About, bool, error) {
	trim(&in.Text, &in.YoutubeLink)
	if err := validateInput(in); err != nil {
		return nil, false, err
	}

	about, err := s.items.coll.FindFirst(ctx)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return s.create(ctx, in)
	case err != nil:
		return nil, false, apperrors.NewInternalError(err)
	}

	about.Text = firstNonEmpty(in.Text, about.Text)
	about.YoutubeLink = firstNonEmpty(in.YoutubeLink, about.YoutubeLink)
	err = saveWithImage(ctx, s.media, in.Image, s.images, about.MediaReference, func(ref domain.MediaReference) error {
		about.MediaReference = ref
		return s.items.replace(ctx, about)
	})
	if err != nil {
		return nil, false, err
	}
	return about, false, nil
}

func (s *AboutService) create(ctx context.Context, in AboutInput) (*domain.About, bool, error) {
	about := &domain.About{Text: in.Text, YoutubeLink: in.YoutubeLink}
	err := saveWithImage(ctx, s.media, in.Image, s.images.Require(), domain.MediaReference{}, func(ref domain.MediaReference) error {
		about.MediaReference = ref
		return s.items.insert(ctx, about)
	})
	if err != nil {
		return nil, false, err
	}
	return about, true, nil
}

// Delete removes the section and its uploaded image.
func (s *AboutService) Delete(ctx context.Context) error {
	about, err := s.items.first(ctx)
	if err != nil {
		return err
	}
	deleted, err := s.items.coll.Delete(ctx, about.ID)
	if err != nil {
		return s.items.mapErr(err, about.ID)
	}
	s.media.Release(ctx, deleted.MediaReference)
	return nil
}
