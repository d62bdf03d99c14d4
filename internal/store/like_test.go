package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepositoryToggleCreatesLikedRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, liked FROM likes WHERE post_id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "liked"}))
	mock.ExpectQuery(`INSERT INTO likes`).
		WithArgs(1, 2).
		WillReturnRows(sqlmock.NewRows([]string{"liked"}).AddRow(true))
	mock.ExpectCommit()

	liked, err := NewLikeRepository(db).Toggle(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.True(t, liked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryToggleFlipsExistingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, liked FROM likes WHERE post_id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "liked"}).AddRow(5, true))
	mock.ExpectQuery(`UPDATE likes SET liked = NOT liked WHERE id = \$1`).
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"liked"}).AddRow(false))
	mock.ExpectCommit()

	liked, err := NewLikeRepository(db).Toggle(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.False(t, liked)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryToggleRollsBackWhenPostVanished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, liked FROM likes`).
		WithArgs(9).
		WillReturnRows(sqlmock.NewRows([]string{"id", "liked"}))
	mock.ExpectQuery(`INSERT INTO likes`).
		WithArgs(9, 2).
		WillReturnError(&pq.Error{Code: "23503"})
	mock.ExpectRollback()

	_, err = NewLikeRepository(db).Toggle(context.Background(), 9, 2)
	assert.ErrorIs(t, err, ErrReferenceMissing)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLikeRepositoryGetByPostMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, post_id, user_id, liked FROM likes WHERE post_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "liked"}))

	_, err = NewLikeRepository(db).GetByPost(context.Background(), 1)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
