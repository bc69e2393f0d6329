package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"microblog/internal/model"
)

// MemoryUserStore is an in-memory drop-in for UserRepository, used in tests
// and local development without PostgreSQL. Email uniqueness matches the
// database index: case-insensitive.
type MemoryUserStore struct {
	mu    sync.RWMutex
	users map[string]model.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{users: map[string]model.User{}}
}

func (s *MemoryUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *MemoryUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *MemoryUserStore) Create(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

func (s *MemoryUserStore) Update(_ context.Context, u model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return model.ErrUserNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && strings.EqualFold(existing.Email, u.Email) {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[u.ID] = u
	return nil
}

// MemoryBlogStore is the in-memory counterpart of BlogRepository.
type MemoryBlogStore struct {
	mu    sync.RWMutex
	blogs map[string]model.Blog
	order []string
}

func NewMemoryBlogStore() *MemoryBlogStore {
	return &MemoryBlogStore{blogs: map[string]model.Blog{}}
}

func (s *MemoryBlogStore) List(_ context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Blog, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		b := s.blogs[s.order[i]]
		if filter.AuthorID != "" && b.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Tag != "" && !slices.Contains(b.Tags, filter.Tag) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *MemoryBlogStore) FindByID(_ context.Context, id string) (model.Blog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blogs[id]
	if !ok {
		return model.Blog{}, model.ErrBlogNotFound
	}
	return b, nil
}

func (s *MemoryBlogStore) Create(_ context.Context, b model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blogs[b.ID] = b
	s.order = append(s.order, b.ID)
	return nil
}

func (s *MemoryBlogStore) Update(_ context.Context, b model.Blog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[b.ID]; !ok {
		return model.ErrBlogNotFound
	}
	s.blogs[b.ID] = b
	return nil
}

func (s *MemoryBlogStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.blogs[id]; !ok {
		return model.ErrBlogNotFound
	}
	delete(s.blogs, id)
	s.order = slices.DeleteFunc(s.order, func(v string) bool { return v == id })
	return nil
}
