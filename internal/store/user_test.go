package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitriy-lar/SocialNetworkAPI/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRowColumns = []string{"id", "email", "password", "is_active", "is_admin"}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.com", "hash", true, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	repo := NewUserRepository(db)
	user, err := repo.Create(context.Background(), types.User{
		Email:        "a@x.com",
		PasswordHash: "hash",
		IsActive:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "a@x.com", user.Email)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err = NewUserRepository(db).Create(context.Background(), types.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "a@x.com", "hash", true, true))
	mock.ExpectQuery(`FROM users WHERE email = \$1`).
		WithArgs("missing@x.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	repo := NewUserRepository(db)

	user, err := repo.GetByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, types.User{ID: 1, Email: "a@x.com", PasswordHash: "hash", IsActive: true, IsAdmin: true}, user)

	_, err = repo.GetByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(userRowColumns).
			AddRow(1, "a@x.com", "h1", true, false).
			AddRow(2, "b@x.com", "h2", true, true))

	users, err := NewUserRepository(db).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "b@x.com", users[1].Email)
	assert.True(t, users[1].IsAdmin)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositorySetAdminMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE users`).
		WithArgs(true, 99).
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err = NewUserRepository(db).SetAdmin(context.Background(), 99, true)
	assert.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
