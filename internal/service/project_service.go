package service

import (
	"context"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
)

// ProjectInput carries the editable fields of a project.
type ProjectInput struct {
	Title       string      `json:"title" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Image       media.Input `json:"-" validate:"-"`
}

// ProjectService manages portfolio projects.
type ProjectService struct {
	items  crud[domain.Project, *domain.Project]
	media  *media.Resolver
	images media.Constraints
}

// NewProjectService builds the service.
func NewProjectService(coll repository.Collection[domain.Project], resolver *media.Resolver, maxUploadBytes int64) *ProjectService {
	return &ProjectService{
		items:  newCrud[domain.Project](coll, "project"),
		media:  resolver,
		images: media.ProjectImages.WithMaxBytes(maxUploadBytes),
	}
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.items.list(ctx, repository.PageQuery{})
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.items.get(ctx, id)
}

func (s *ProjectService) Create(ctx context.Context, in ProjectInput) (*domain.Project, error) {
	trim(&in.Title, &in.Category, &in.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	project := &domain.Project{Title: in.Title, Category: in.Category, Description: in.Description}
	err := saveWithImage(ctx, s.media, in.Image, s.images, domain.MediaReference{}, func(ref domain.MediaReference) error {
		project.MediaReference = ref
		return s.items.insert(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error) {
	trim(&in.Title, &in.Category, &in.Description)

	project, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = firstNonEmpty(in.Title, project.Title)
	in.Category = firstNonEmpty(in.Category, project.Category)
	in.Description = firstNonEmpty(in.Description, project.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	project.Title = in.Title
	project.Category = in.Category
	project.Description = in.Description

	err = saveWithImage(ctx, s.media, in.Image, s.images, project.MediaReference, func(ref domain.MediaReference) error {
		project.MediaReference = ref
		return s.items.replace(ctx, project)
	})
	if err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	project, err := s.items.remove(ctx, id)
	if err != nil {
		return err
	}
	s.media.Release(ctx, project.MediaReference)
	return nil
}
