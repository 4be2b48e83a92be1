package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccer-mvp/soccer-api/repositories"
)

func newUserServiceMock(t *testing.T) (UserService, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewUserService(repositories.NewPostgresUserRepository(db)), mock
}

func strPtr(s string) *string { return &s }

func TestCreateUserMissingFields(t *testing.T) {
	svc, _ := newUserServiceMock(t)

	cases := []CreateUserInput{
		{},
		{Name: "Ana", Email: "ana@example.com"},
		{Name: "Ana", Password: "secret123"},
		{Email: "ana@example.com", Password: "secret123"},
	}
	for _, input := range cases {
		_, err := svc.CreateUser(context.Background(), input)
		assert.ErrorIs(t, err, ErrMissingFields)
	}
}

func TestCreateUserSuccess(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users.+RETURNING id`).
		WithArgs("Ana", "ana@example.com", nil, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "  Ana  ",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Ana", user.Name)
	assert.NotEqual(t, "secret123", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	mock.ExpectQuery(`(?s)INSERT INTO users.+RETURNING id`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	_, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrUserEmailConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(1, "Ana").
		AddRow(2, "Bruno")
	mock.ExpectQuery(`(?s)SELECT id, name.+FROM users.+ORDER BY id ASC`).
		WillReturnRows(rows)

	users, err := svc.ListUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ana", users[0].Name)
	assert.Equal(t, 2, users[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByIDNotFound(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM users.+WHERE id = \$1`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.GetUserByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserNoFields(t *testing.T) {
	svc, _ := newUserServiceMock(t)

	_, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{})
	assert.ErrorIs(t, err, ErrNoFieldsToUpdate)
}

func TestUpdateUserSuccess(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	loaded := sqlmock.NewRows([]string{"id", "name", "email", "birth", "password_hash"}).
		AddRow(1, "Ana", "ana@example.com", nil, "old-hash")
	mock.ExpectQuery(`(?s)SELECT.+FROM users.+WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(loaded)
	mock.ExpectExec(`(?s)UPDATE users SET.+WHERE id = \$5`).
		WithArgs("Ana Clara", "ana@example.com", "1999-04-12", "old-hash", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{
		Name:  strPtr("Ana Clara"),
		Birth: strPtr("1999-04-12"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Clara", user.Name)
	require.NotNil(t, user.Birth)
	assert.Equal(t, "1999-04-12", *user.Birth)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserEmptyValueRejected(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	loaded := sqlmock.NewRows([]string{"id", "name", "email", "birth", "password_hash"}).
		AddRow(1, "Ana", "ana@example.com", nil, "old-hash")
	mock.ExpectQuery(`(?s)SELECT.+FROM users.+WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(loaded)

	_, err := svc.UpdateUser(context.Background(), 1, UpdateUserInput{Email: strPtr("")})
	assert.ErrorIs(t, err, ErrMissingFields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserNotFound(t *testing.T) {
	svc, mock := newUserServiceMock(t)

	mock.ExpectQuery(`(?s)SELECT.+FROM users.+WHERE id = \$1`).
		WithArgs(42).
		WillReturnError(sql.ErrNoRows)

	_, err := svc.UpdateUser(context.Background(), 42, UpdateUserInput{Name: strPtr("Ghost")})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
