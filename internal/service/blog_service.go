package service

import (
	"context"

	"github.com/spec-kit/content-service/internal/domain"
	"github.com/spec-kit/content-service/internal/media"
	"github.com/spec-kit/content-service/internal/repository"
)

// BlogPageSize is the number of posts per blog page.
const BlogPageSize = 6

// BlogPostInput carries the editable fields of a blog post.
type BlogPostInput struct {
	Title       string      `json:"title" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Date        string      `json:"date" validate:"required"`
	Description string      `json:"description" validate:"required"`
	YoutubeLink string      `json:"youtubeLink" validate:"omitempty,url"`
	Image       media.Input `json:"-" validate:"-"`
}

// BlogService manages blog posts.
type BlogService struct {
	items  crud[domain.BlogPost, *domain.BlogPost]
	media  *media.Resolver
	images media.Constraints
}

func NewBlogService(coll repository.Collection[domain.BlogPost], resolver *media.Resolver, maxUploadBytes int64) *BlogService {
	return &BlogService{
		items:  newCrud[domain.BlogPost](coll, "blog post"),
		media:  resolver,
		images: media.BlogImages.WithMaxBytes(maxUploadBytes),
	}
}

// Page returns one page of posts, newest first. Pages below 1 are treated as 1.
func (s *BlogService) Page(ctx context.Context, page int) (*domain.BlogPage, error) {
	if page < 1 {
		page = 1
	}
	total, err := s.items.count(ctx)
	if err != nil {
		return nil, err
	}
	items, err := s.items.list(ctx, repository.PageQuery{Skip: (page - 1) * BlogPageSize, Limit: BlogPageSize})
	if err != nil {
		return nil, err
	}
	return &domain.BlogPage{
		Items:       items,
		CurrentPage: page,
		TotalPages:  int((total + BlogPageSize - 1) / BlogPageSize),
	}, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*domain.BlogPost, error) {
	return s.items.get(ctx, id)
}

// Create stores a new post. The image is mandatory.
func (s *BlogService) Create(ctx context.Context, in BlogPostInput) (*domain.BlogPost, error) {
	trim(&in.Title, &in.Category, &in.Date, &in.Description, &in.YoutubeLink)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	post := &domain.BlogPost{
		Title:       in.Title,
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
		YoutubeLink: in.YoutubeLink,
	}
	err := saveWithImage(ctx, s.media, in.Image, s.images.Require(), domain.MediaReference{}, func(ref domain.MediaReference) error {
		post.MediaReference = ref
		return s.items.insert(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// Update merges the input into the stored post. Fields left empty keep their
// current value.
func (s *BlogService) Update(ctx context.Context, id string, in BlogPostInput) (*domain.BlogPost, error) {
	trim(&in.Title, &in.Category, &in.Date, &in.Description, &in.YoutubeLink)

	post, err := s.items.get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.Title = firstNonEmpty(in.Title, post.Title)
	in.Category = firstNonEmpty(in.Category, post.Category)
	in.Date = firstNonEmpty(in.Date, post.Date)
	in.Description = firstNonEmpty(in.Description, post.Description)
	in.YoutubeLink = firstNonEmpty(in.YoutubeLink, post.YoutubeLink)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	post.Title = in.Title
	post.Category = in.Category
	post.Date = in.Date
	post.Description = in.Description
	post.YoutubeLink = in.YoutubeLink

	err = saveWithImage(ctx, s.media, in.Image, s.images, post.MediaReference, func(ref domain.MediaReference) error {
		post.MediaReference = ref
		return s.items.replace(ctx, post)
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	post, err := s.items.remove(ctx, id)
	if err != nil {
		return err
	}
	s.media.Release(ctx, post.MediaReference)
	return nil
}
