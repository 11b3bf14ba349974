package service

import (
	"context"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/repository"
)

// CareerInput carries the editable fields of a job listing.
type CareerInput struct {
	Title       string `json:"title" validate:"required,min=2"`
	Text        string `json:"text" validate:"required,min=2"`
	Description string `json:"description" validate:"required,min=2"`
}

// CareerService manages job listings.
type CareerService struct {
	items crud[domain.Career, *domain.Career]
}

func NewCareerService(coll repository.Collection[domain.Career]) *CareerService {
	return &CareerService{items: newCrud[domain.Career](coll, "career")}
}

func (s *CareerService) List(ctx context.Context) ([]domain.Career, error) {
	return s.items.list(ctx, repository.PageQuery{})
}

func (s *CareerService) Get(ctx context.Context, id string) (*domain.Career, error) {
	return s.items.get(ctx, id)
}

func (s *CareerService) Create(ctx context.Context, in CareerInput) (*domain.Career, error) {
	trim(&in.Title, &in.Text, &in.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	career := &domain.Career{Title: in.Title, Text: in.Text, Description: in.Description}
	if err := s.items.insert(ctx, career); err != nil {
		return nil, err
	}
	return career, nil
}

func (s *CareerService) Update(ctx context.Context, id string, in CareerInput) (*domain.Career, error) {
	trim(&in.Title, &in.Text, &in.Description)

	career, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = firstNonEmpty(in.Title, career.Title)
	in.Text = firstNonEmpty(in.Text, career.Text)
	in.Description = firstNonEmpty(in.Description, career.Description)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	career.Title = in.Title
	career.Text = in.Text
	career.Description = in.Description
	if err := s.items.replace(ctx, career); err != nil {
		return nil, err
	}
	return career, nil
}

func (s *CareerService) Delete(ctx context.Context, id string) error {
	_, err := s.items.remove(ctx, id)
	return err
}
