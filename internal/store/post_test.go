package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var postRowColumns = []string{
	"id", "title", "content", "category_id", "user_id", "time_created", "time_updated", "likes_count",
}

func TestPostRepositoryGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2023, 2, 10, 12, 44, 7, 0, time.UTC)
	mock.ExpectQuery(`FROM posts p WHERE p.id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(3, "Title", "Content", 1, 2, created, nil, 1))

	post, err := NewPostRepository(db).Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, post.ID)
	assert.Equal(t, 2, post.UserID)
	assert.Equal(t, created, post.TimeCreated)
	assert.Nil(t, post.TimeUpdated)
	assert.Equal(t, 1, post.LikesCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryGetMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM posts p WHERE p.id = \$1`).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(postRowColumns))

	_, err = NewPostRepository(db).Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs("Title", "Content", 1, 2, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))

	post, err := NewPostRepository(db).Create(context.Background(), types.Post{
		Title:      "Title",
		Content:    "Content",
		CategoryID: 1,
		UserID:     2,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, post.ID)
	assert.False(t, post.TimeCreated.IsZero())
	assert.Nil(t, post.TimeUpdated)
	assert.Zero(t, post.LikesCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryCreateMissingCategory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO posts`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "posts_category_id_fkey"})

	_, err = NewPostRepository(db).Create(context.Background(), types.Post{CategoryID: 999, UserID: 1})
	assert.ErrorIs(t, err, ErrReferenceMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryUpdateReloadsRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	created := time.Date(2023, 2, 10, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectExec(`UPDATE posts`).
		WithArgs("New", "Body", 2, sqlmock.AnyArg(), 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`FROM posts p WHERE p.id = \$1`).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(3, "New", "Body", 2, 1, created, updated, 0))

	post, err := NewPostRepository(db).Update(context.Background(), types.Post{
		ID:         3,
		Title:      "New",
		Content:    "Body",
		CategoryID: 2,
	})
	require.NoError(t, err)
	require.NotNil(t, post.TimeUpdated)
	assert.Equal(t, updated, *post.TimeUpdated)
	assert.Equal(t, "New", post.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryListByUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`WHERE p.user_id = \$1 ORDER BY p.id`).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(postRowColumns).
			AddRow(1, "A", "a", 1, 2, now, nil, 0).
			AddRow(4, "B", "b", 1, 2, now, now, 1))

	posts, err := NewPostRepository(db).ListByUser(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Nil(t, posts[0].TimeUpdated)
	assert.NotNil(t, posts[1].TimeUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepositoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM posts WHERE id = \$1`).
		WithArgs(8).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, NewPostRepository(db).Delete(context.Background(), 8), ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
