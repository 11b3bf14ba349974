package service

import (
	"context"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
)

// TeamMemberInput carries the editable fields of a team member.
type TeamMemberInput struct {
	Name        string             `json:"name" validate:"required"`
	Position    string             `json:"position" validate:"required"`
	SocialLinks domain.SocialLinks `json:"socialLinks"`
	Image       media.Input        `json:"-" validate:"-"`
}

func (in *TeamMemberInput) normalize() {
	trim(&in.Name, &in.Position,
		&in.SocialLinks.Facebook, &in.SocialLinks.Instagram, &in.SocialLinks.LinkedIn, &in.SocialLinks.WhatsApp)
}

// TeamService manages team members.
type TeamService struct {
	items  crud[domain.TeamMember, *domain.TeamMember]
	media  *media.Resolver
	images media.Constraints
}

// NewTeamService builds the service.
func NewTeamService(coll repository.Collection[domain.TeamMember], resolver *media.Resolver, maxUploadBytes int64) *TeamService {
	return &TeamService{
		items:  newCrud[domain.TeamMember](coll, "team member"),
		media:  resolver,
		images: media.TeamImages.WithMaxBytes(maxUploadBytes),
	}
}

// List returns every member, newest first.
func (s *TeamService) List(ctx context.Context) ([]domain.TeamMember, error) {
	return s.items.list(ctx, repository.PageQuery{})
}

// Get returns one member.
func (s *TeamService) Get(ctx context.Context, id string) (*domain.TeamMember, error) {
	return s.items.get(ctx, id)
}

// Create stores a new member. The photo is optional.
func (s *TeamService) Create(ctx context.Context, in TeamMemberInput) (*domain.TeamMember, error) {
	in.normalize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	member := &domain.TeamMember{Name: in.Name, Position: in.Position, SocialLinks: in.SocialLinks}
	err := saveWithImage(ctx, s.media, in.Image, s.images, domain.MediaReference{}, func(ref domain.MediaReference) error {
		member.MediaReference = ref
		return s.items.insert(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Update merges the input into the stored member. Fields left empty keep
// their current value, as does the photo when none is supplied.
func (s *TeamService) Update(ctx context.Context, id string, in TeamMemberInput) (*domain.TeamMember, error) {
	in.normalize()

	member, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Name = firstNonEmpty(in.Name, member.Name)
	in.Position = firstNonEmpty(in.Position, member.Position)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	member.Name = in.Name
	member.Position = in.Position
	member.SocialLinks = domain.SocialLinks{
		Facebook:  firstNonEmpty(in.SocialLinks.Facebook, member.SocialLinks.Facebook),
		Instagram: firstNonEmpty(in.SocialLinks.Instagram, member.SocialLinks.Instagram),
		LinkedIn:  firstNonEmpty(in.SocialLinks.LinkedIn, member.SocialLinks.LinkedIn),
		WhatsApp:  firstNonEmpty(in.SocialLinks.WhatsApp, member.SocialLinks.WhatsApp),
	}

	err = saveWithImage(ctx, s.media, in.Image, s.images, member.MediaReference, func(ref domain.MediaReference) error {
		member.MediaReference = ref
		return s.items.replace(ctx, member)
	})
	if err != nil {
		return nil, err
	}
	return member, nil
}

// Delete removes the member and its uploaded photo.
func (s *TeamService) Delete(ctx context.Context, id string) error {
	member, err := s.items.remove(ctx, id)
	if err != nil {
		return err
	}
	s.media.Release(ctx, member.MediaReference)
	return nil
}
