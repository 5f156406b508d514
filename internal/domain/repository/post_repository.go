package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/platform/database"
)

// PostFilter scopes List to what the caller may see. An empty ViewerID means
// published posts only; a non-empty ViewerID additionally includes that
// user's own drafts.
type PostFilter struct {
	ViewerID string
}

// PostChanges carries the fields of a partial update. Nil means "leave as
// is". Author identity and creation time are not updatable by design.
type PostChanges struct {
	Title     *string
	Slug      *string
	Content   *string
	Published *bool
}

func (c PostChanges) Empty() bool {
	return c.Title == nil && c.Slug == nil && c.Content == nil && c.Published == nil
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	Update(ctx context.Context, id string, changes PostChanges) (*model.Post, error)
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]model.Post, int, error)
}

type pgPostRepository struct {
	handle *database.Handle
}

func NewPgPostRepository(handle *database.Handle) PostRepository {
	return &pgPostRepository{handle: handle}
}

const postColumns = `id, title, slug, content, author_id, author_name, published, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (*model.Post, error) {
	post := &model.Post{}
	err := row.Scan(
		&post.ID, &post.Title, &post.Slug, &post.Content,
		&post.AuthorID, &post.AuthorName, &post.Published,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return post, nil
}

func (r *pgPostRepository) Create(ctx context.Context, post *model.Post) error {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return err
	}

	query := `INSERT INTO posts (id, title, slug, content, author_id, author_name, published, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = db.ExecContext(ctx, query,
		post.ID, post.Title, post.Slug, post.Content,
		post.AuthorID, post.AuthorName, post.Published,
		post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post, err := scanPost(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

// Update applies the present fields and always bumps updated_at. A matched
// row that happens to keep its old values still counts as a successful
// update; only a missing row is ErrNotFound.
func (r *pgPostRepository) Update(ctx context.Context, id string, changes PostChanges) (*model.Post, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrNotFound
	}

	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, err
	}

	var sets []string
	var args []interface{}
	argID := 1

	if changes.Title != nil {
		sets = append(sets, fmt.Sprintf("title = $%d", argID))
		args = append(args, *changes.Title)
		argID++
	}
	if changes.Slug != nil {
		sets = append(sets, fmt.Sprintf("slug = $%d", argID))
		args = append(args, *changes.Slug)
		argID++
	}
	if changes.Content != nil {
		sets = append(sets, fmt.Sprintf("content = $%d", argID))
		args = append(args, *changes.Content)
		argID++
	}
	if changes.Published != nil {
		sets = append(sets, fmt.Sprintf("published = $%d", argID))
		args = append(args, *changes.Published)
		argID++
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now().UTC())
	argID++

	query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argID, postColumns)
	args = append(args, id)

	post, err := scanPost(db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) Delete(ctx context.Context, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, common.ErrNotFound
	}

	db, err := r.handle.Get(ctx)
	if err != nil {
		return false, err
	}

	result, err := db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	return affected > 0, nil
}

// List returns one page ordered newest first, ties broken by id, plus the
// total count of rows matching the filter.
func (r *pgPostRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]model.Post, int, error) {
	db, err := r.handle.Get(ctx)
	if err != nil {
		return nil, 0, err
	}

	where := `WHERE published = TRUE`
	var args []interface{}
	if filter.ViewerID != "" {
		where = `WHERE (published = TRUE OR author_id = $1)`
		args = append(args, filter.ViewerID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM posts ` + where
	if err := db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM posts %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		postColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		posts = append(posts, *post)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List rows.Err: %w", err)
	}

	return posts, total, nil
}
