package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"pressroom/internal/app/authz"
	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/domain/repository"
	"pressroom/internal/platform/cache"
)

type PostService struct {
	postRepo repository.PostRepository
	cache    *cache.PostCache
}

func NewPostService(postRepo repository.PostRepository, postCache *cache.PostCache) *PostService {
	return &PostService{postRepo: postRepo, cache: postCache}
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Content   string `json:"content" validate:"required"`
	Published bool   `json:"published"`
}

// UpdatePostRequest carries a partial update. Absent fields stay untouched.
// Author identity fields are not part of the shape at all, so a body that
// smuggles in authorId or email simply decodes past them.
type UpdatePostRequest struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Content   *string `json:"content,omitempty" validate:"omitempty,min=1"`
	Published *bool   `json:"published,omitempty"`
}

type PostPage struct {
	Posts      []model.Post     `json:"posts"`
	Pagination authz.Pagination `json:"pagination"`
}

func (s *PostService) Create(ctx context.Context, id *authz.Identity, req CreatePostRequest) (*model.Post, error) {
	if err := authz.Decide(id, authz.OpCreate, nil); err != nil {
		return nil, err
	}
	if err := checkInput(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	post := &model.Post{
		ID:         uuid.NewString(),
		Title:      req.Title,
		Slug:       slug.Make(req.Title),
		Content:    req.Content,
		AuthorID:   id.UserID,
		AuthorName: id.Name,
		Published:  req.Published,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id *authz.Identity, postID string) (*model.Post, error) {
	// Only published posts are ever cached, so a hit is readable by anyone.
	if post := s.cache.Get(ctx, postID); post != nil {
		return post, nil
	}

	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := authz.Decide(id, authz.OpRead, &authz.Target{AuthorID: post.AuthorID, Published: post.Published}); err != nil {
		return nil, err
	}

	s.cache.Set(ctx, post)
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id *authz.Identity, postID string, req UpdatePostRequest) (*model.Post, error) {
	existing, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if err := authz.Decide(id, authz.OpUpdate, &authz.Target{AuthorID: existing.AuthorID, Published: existing.Published}); err != nil {
		return nil, err
	}
	if err := checkInput(req); err != nil {
		return nil, err
	}

	changes := repository.PostChanges{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}
	if req.Title != nil && *req.Title != existing.Title {
		newSlug := slug.Make(*req.Title)
		changes.Slug = &newSlug
	}

	// A no-change update still succeeds and bumps updated_at.
	updated, err := s.postRepo.Update(ctx, postID, changes)
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, postID)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id *authz.Identity, postID string) error {
	existing, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return err
	}

	if err := authz.Decide(id, authz.OpDelete, &authz.Target{AuthorID: existing.AuthorID, Published: existing.Published}); err != nil {
		return err
	}

	deleted, err := s.postRepo.Delete(ctx, postID)
	if err != nil {
		return err
	}
	if !deleted {
		return common.ErrNotFound
	}

	s.cache.Invalidate(ctx, postID)
	return nil
}

func (s *PostService) List(ctx context.Context, id *authz.Identity, page, limit int) (*PostPage, error) {
	page, limit = authz.NormalizePage(page, limit)
	offset := (page - 1) * limit

	posts, total, err := s.postRepo.List(ctx, authz.ListScope(id), limit, offset)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Pagination: authz.NewPagination(page, limit, total),
	}, nil
}
