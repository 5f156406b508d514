package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pressroom/internal/common"
	"pressroom/internal/domain/model"
	"pressroom/internal/platform/database"
)

func newMockPostRepo(t *testing.T) (PostRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPgPostRepository(database.NewHandleFromDB(db)), mock
}

const postID = "9c7a3f1e-2b64-4f7b-8a20-5cde8f33b911"

func postRows(posts ...*model.Post) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "title", "slug", "content", "author_id", "author_name", "published", "created_at", "updated_at",
	})
	for _, p := range posts {
		rows.AddRow(p.ID, p.Title, p.Slug, p.Content, p.AuthorID, p.AuthorName, p.Published, p.CreatedAt, p.UpdatedAt)
	}
	return rows
}

func testPost() *model.Post {
	now := time.Now().UTC()
	return &model.Post{
		ID:         postID,
		Title:      "Hi",
		Slug:       "hi",
		Content:    "World",
		AuthorID:   "5b6f9d52-8e74-4f10-9dc2-32a03a9c2f10",
		AuthorName: "Alice",
		Published:  false,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestPostCreate(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	post := testPost()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO posts")).
		WithArgs(post.ID, post.Title, post.Slug, post.Content, post.AuthorID, post.AuthorName,
			post.Published, post.CreatedAt, post.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Create(context.Background(), post))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostFindByID(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	post := testPost()

	mock.ExpectQuery(regexp.QuoteMeta("FROM posts WHERE id = $1")).
		WithArgs(postID).
		WillReturnRows(postRows(post))

	got, err := repo.FindByID(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, post.Title, got.Title)
	assert.Equal(t, post.AuthorID, got.AuthorID)
}

func TestPostFindByID_MalformedID(t *testing.T) {
	repo, mock := newMockPostRepo(t)

	for _, id := range []string{"", "123", "zz-not-a-uuid", "../etc/passwd"} {
		_, err := repo.FindByID(context.Background(), id)
		require.ErrorIs(t, err, common.ErrNotFound, "id %q", id)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostUpdate_PartialFields(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	post := testPost()
	post.Title = "New title"

	title := "New title"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET title = $1, updated_at = $2 WHERE id = $3 RETURNING")).
		WithArgs(title, sqlmock.AnyArg(), postID).
		WillReturnRows(postRows(post))

	got, err := repo.Update(context.Background(), postID, PostChanges{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "New title", got.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Even a changes-free update bumps updated_at and succeeds when the row
// matches.
func TestPostUpdate_NoFields(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	post := testPost()

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET updated_at = $1 WHERE id = $2 RETURNING")).
		WithArgs(sqlmock.AnyArg(), postID).
		WillReturnRows(postRows(post))

	_, err := repo.Update(context.Background(), postID, PostChanges{})
	require.NoError(t, err)
}

func TestPostUpdate_Missing(t *testing.T) {
	repo, mock := newMockPostRepo(t)

	title := "x"
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE posts SET")).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Update(context.Background(), postID, PostChanges{Title: &title})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestPostDelete(t *testing.T) {
	repo, mock := newMockPostRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := repo.Delete(context.Background(), postID)
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM posts WHERE id = $1")).
		WithArgs(postID).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = repo.Delete(context.Background(), postID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPostList_AnonymousScope(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	post := testPost()
	post.Published = true

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM posts WHERE published = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2")).
		WithArgs(10, 0).
		WillReturnRows(postRows(post))

	posts, total, err := repo.List(context.Background(), PostFilter{}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.True(t, posts[0].Published)
}

func TestPostList_ViewerScope(t *testing.T) {
	repo, mock := newMockPostRepo(t)
	viewer := "5b6f9d52-8e74-4f10-9dc2-32a03a9c2f10"

	mock.ExpectQuery(regexp.QuoteMeta("WHERE (published = TRUE OR author_id = $1)")).
		WithArgs(viewer).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("LIMIT $2 OFFSET $3")).
		WithArgs(viewer, 10, 0).
		WillReturnRows(postRows(testPost()))

	_, total, err := repo.List(context.Background(), PostFilter{ViewerID: viewer}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
