package service

import (
	"context"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
)

// OfferingInput carries the editable fields of an advertised service.
type OfferingInput struct {
	Title       string      `json:"title" validate:"required,min=2"`
	Text        string      `json:"text" validate:"required,min=2"`
	Description string      `json:"description" validate:"required,min=2"`
	Image       media.Input `json:"-" validate:"-"`
}

// OfferingService manages the services the business advertises. Every
// offering must carry an image.
type OfferingService struct {
	items  crud[domain.Offering, *domain.Offering]
	media  *media.Resolver
	images media.Constraints
}

func NewOfferingService(coll repository.Collection[domain.Offering], resolver *media.Resolver, maxUploadBytes int64) *OfferingService {
	return &OfferingService{
		items:  newCrud[domain.Offering](coll, "service"),
		media:  resolver,
		images: media.ServiceImages.WithMaxBytes(maxUploadBytes),
	}
}

func (s *OfferingService) List(ctx context.Context) ([]domain.Offering, error) {
	return s.items.list(ctx, repository.PageQuery{})
}

func (s *OfferingService) Get(ctx context.Context, id string) (*domain.Offering, error) {
	return s.items.get(ctx, id)
}

func (s *OfferingService) Create(ctx context.Context, in OfferingInput) (*domain.Offering, error) {
	trim(&in.Title, &in.Text, &in.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	offering := &domain.Offering{Title: in.Title, Text: in.Text, Description: in.Description}
	err := saveWithImage(ctx, s.media, in.Image, s.images.Require(), domain.MediaReference{}, func(ref domain.MediaReference) error {
		offering.MediaReference = ref
		return s.items.insert(ctx, offering)
	})
	if err != nil {
		return nil, err
	}
	return offering, nil
}

func (s *OfferingService) Update(ctx context.Context, id string, in OfferingInput) (*domain.Offering, error) {
	trim(&in.Title, &in.Text, &in.Description)

	offering, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = firstNonEmpty(in.Title, offering.Title)
	in.Text = firstNonEmpty(in.Text, offering.Text)
	in.Description = firstNonEmpty(in.Description, offering.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	offering.Title = in.Title
	offering.Text = in.Text
	offering.Description = in.Description

	err = saveWithImage(ctx, s.media, in.Image, s.images, offering.MediaReference, func(ref domain.MediaReference) error {
		offering.MediaReference = ref
		return s.items.replace(ctx, offering)
	})
	if err != nil {
		return nil, err
	}
	return offering, nil
}

func (s *OfferingService) Delete(ctx context.Context, id string) error {
	offering, err := s.items.remove(ctx, id)
	if err != nil {
		return err
	}
	s.media.Release(ctx, offering.MediaReference)
	return nil
}
