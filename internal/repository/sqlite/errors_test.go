package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		op      string
		want    error
		message string
	}{
		{name: "no rows", err: sql.ErrNoRows, op: "scan user", want: repository.ErrNotFound, message: "scan user: not found"},
		{name: "unique column", err: errors.New("constraint failed: UNIQUE constraint failed: users.email (2067)"), op: "insert user", want: repository.ErrConflict, message: "email already exists"},
		{name: "foreign key insert", err: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), op: "insert thread", want: repository.ErrInvalidReference},
		{name: "foreign key delete", err: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), op: "delete user", want: repository.ErrReferenced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := translate(tt.err, tt.op)
			require.ErrorIs(t, err, tt.want)
			if tt.message != "" {
				assert.Equal(t, tt.message, err.Error())
			}
		})
	}

	assert.NoError(t, translate(nil, "noop"))

	other := errors.New("disk I/O error")
	assert.ErrorIs(t, translate(other, "insert user"), other)
}

func TestUniqueField(t *testing.T) {
	assert.Equal(t, "username", uniqueField("UNIQUE constraint failed: users.username"))
	assert.Equal(t, "name", uniqueField("UNIQUE constraint failed: categories.name (2067)"))
	assert.Equal(t, "", uniqueField("something else"))
}

func TestUserCreateTranslatesDriverErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(errors.New("UNIQUE constraint failed: users.username"))

	_, err = NewUserRepository(db).Create(context.Background(), &domain.User{Username: "alice", Email: "a@b", PasswordHash: "x"})
	require.ErrorIs(t, err, repository.ErrConflict)
	assert.Equal(t, "username already exists", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadDeleteRollsBackWhenMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM threads").WithArgs(int64(7)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err = NewThreadRepository(db).Delete(context.Background(), 7)
	require.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestThreadDeleteCommitsCascade(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM comments").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("DELETE FROM threads").WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, NewThreadRepository(db).Delete(context.Background(), 3))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountOwnedPropagatesQueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("database is locked"))

	_, _, err = NewUserRepository(db).CountOwned(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count owned rows")
	require.NoError(t, mock.ExpectationsWereMet())
}
