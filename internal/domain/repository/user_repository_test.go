package repository

import (
	"context"
	"testing"
	"time"

	"fittrack/internal/common"
	"fittrack/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userCols = []string{
	"id", "username", "email", "hashed_password", "name", "age", "gender",
	"height_cm", "weight_kg", "experience", "frequency", "duration", "goal", "created_at",
}

func userRow(id int64) *sqlmock.Rows {
	return sqlmock.NewRows(userCols).AddRow(
		id, "bob", "bob@x.com", "$2a$10$hash", "Bob", 30, "m",
		180.0, 80.0, "intermediate", "3x", "60min", "strength", time.Now(),
	)
}

func TestUserRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	repo := NewPgUserRepository(db)
	user := &model.User{Username: "bob", Email: "bob@x.com", HashedPassword: "hash"}
	err = repo.Create(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.False(t, user.CreatedAt.IsZero())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Create_UniqueViolation(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewPgUserRepository(db)
	err = repo.Create(context.Background(), &model.User{Username: "bob", Email: "bob@x.com"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE username`).
		WithArgs("bob").
		WillReturnRows(userRow(7))

	repo := NewPgUserRepository(db)
	user, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.ID)
	assert.Equal(t, "bob", user.Username)
	require.NotNil(t, user.Age)
	assert.Equal(t, 30, *user.Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByID_NullProfileFields(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(userCols).AddRow(
		int64(7), "bob", "bob@x.com", "$2a$10$hash", "", nil, "",
		nil, nil, "", "", "", "", time.Now(),
	)
	mock.ExpectQuery(`FROM users WHERE id`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	repo := NewPgUserRepository(db)
	user, err := repo.FindByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, user.Age)
	assert.Nil(t, user.HeightCm)
	assert.Nil(t, user.WeightKg)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM users WHERE email`).
		WithArgs("ghost@x.com").
		WillReturnRows(sqlmock.NewRows(userCols))

	repo := NewPgUserRepository(db)
	_, err = repo.FindByEmail(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPgUserRepository(db)
	err = repo.UpdateProfile(context.Background(), &model.User{ID: 7, Name: "Bob"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateProfile_MissingUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPgUserRepository(db)
	err = repo.UpdateProfile(context.Background(), &model.User{ID: 99})
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
