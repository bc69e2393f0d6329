package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"microblog/internal/model"
)

type BlogStore interface {
	List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error)
	FindByID(ctx context.Context, id string) (model.Blog, error)
	Create(ctx context.Context, b model.Blog) error
	Update(ctx context.Context, b model.Blog) error
	Delete(ctx context.Context, id string) error
}

type BlogService struct {
	store BlogStore
}

func NewBlogService(store BlogStore) *BlogService {
	return &BlogService{store: store}
}

func (s *BlogService) List(ctx context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	return s.store.List(ctx, filter)
}

func (s *BlogService) Get(ctx context.Context, id string) (model.Blog, error) {
	return s.store.FindByID(ctx, id)
}

// Create stamps the post with the authenticated caller as author.
func (s *BlogService) Create(ctx context.Context, req model.CreateBlogRequest, author model.AuthUser) (model.Blog, error) {
	now := time.Now().UTC()
	blog := model.Blog{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Content:   req.Content,
		Author:    author.Username,
		AuthorID:  author.ID,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}

	if err := s.store.Create(ctx, blog); err != nil {
		return model.Blog{}, err
	}
	return blog, nil
}

func (s *BlogService) Update(ctx context.Context, id string, req model.UpdateBlogRequest) (model.Blog, error) {
	blog, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Blog{}, err
	}

	if req.Title != "" {
		blog.Title = req.Title
	}
	if req.Content != "" {
		blog.Content = req.Content
	}
	if req.Tags != nil {
		blog.Tags = req.Tags
	}
	blog.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, blog); err != nil {
		return model.Blog{}, err
	}
	return blog, nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
