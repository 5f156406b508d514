package service_test

import (
	"context"
	"sort"
	"time"

	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/domain/repository"
)

type stubUserRepo struct {
	users map[string]*model.User // by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*model.User{}}
}

func (s *stubUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range s.users {
		if u.Email == user.Email {
			return common.ErrDuplicateEmail
		}
	}
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, common.ErrNotFound
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

type stubPostRepo struct {
	posts map[string]*model.Post
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: map[string]*model.Post{}}
}

func (s *stubPostRepo) Create(_ context.Context, post *model.Post) error {
	clone := *post
	s.posts[post.ID] = &clone
	return nil
}

func (s *stubPostRepo) FindByID(_ context.Context, id string) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubPostRepo) Update(_ context.Context, id string, changes repository.PostChanges) (*model.Post, error) {
	p, ok := s.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	if changes.Title != nil {
		p.Title = *changes.Title
	}
	if changes.Slug != nil {
		p.Slug = *changes.Slug
	}
	if changes.Content != nil {
		p.Content = *changes.Content
	}
	if changes.Published != nil {
		p.Published = *changes.Published
	}
	p.UpdatedAt = time.Now().UTC()
	clone := *p
	return &clone, nil
}

func (s *stubPostRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *stubPostRepo) List(_ context.Context, filter repository.PostFilter, limit, offset int) ([]model.Post, int, error) {
	var matched []model.Post
	for _, p := range s.posts {
		if p.Published || (filter.ViewerID != "" && p.AuthorID == filter.ViewerID) {
			matched = append(matched, *p)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	total := len(matched)
	if offset >= total {
		return []model.Post{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}
