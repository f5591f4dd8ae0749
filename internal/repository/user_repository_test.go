package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"
	"tour-booking-api/config"
	"tour-booking-api/internal/model"
	"tour-booking-api/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

var userRows = []string{
	"uuid", "name", "email", "photo", "role", "password_hash", "password_changed_at",
	"password_reset_token", "password_reset_token_expires",
	"verification_token", "verification_token_expires",
	"active", "verified", "created_at",
}

func newTestUserRepo(t *testing.T) (*repository.UserRepository, *config.Database, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { mockDB.Close() })

	db := &config.Database{DB: sqlx.NewDb(mockDB, "sqlmock")}
	return repository.NewUserRepository(db), db, mock
}

func userRow(mock sqlmock.Sqlmock, uuid, email string) *sqlmock.Rows {
	return mock.NewRows(userRows).AddRow(
		uuid, "Alice", email, "default.jpg", model.RoleUser, "hash", nil,
		nil, nil,
		nil, nil,
		true, false, time.Now(),
	)
}

func TestFindByEmail_Found(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1 AND active = TRUE`).
		WithArgs("a@x.com").
		WillReturnRows(userRow(mock, "u1", "a@x.com"))

	user, err := repo.FindByEmail(context.Background(), db, "a@x.com")

	assert.NoError(t, err)
	assert.Equal(t, "u1", user.UUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1 AND active = TRUE`).
		WithArgs("ghost@x.com").
		WillReturnRows(mock.NewRows(userRows))

	_, err := repo.FindByEmail(context.Background(), db, "ghost@x.com")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrUserNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), db, &model.User{
		UUID:  "u1",
		Email: "a@x.com",
	})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, repository.ErrDuplicateEmail))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// смена пароля должна отодвигать password_changed_at на секунду назад
func TestUpdatePassword_BackdatesChangedAt(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`password_changed_at = NOW() - INTERVAL '1 second'`)).
		WithArgs("u1", "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdatePassword(context.Background(), db, "u1", "newhash")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUser(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	mock.ExpectExec(`UPDATE users SET active = FALSE WHERE uuid = \$1`).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeactivateUser(context.Background(), db, "u1")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// при limit+1 строках курсор указывает на последнего пользователя страницы
func TestListUsers_NextCursor(t *testing.T) {
	repo, db, mock := newTestUserRepo(t)

	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rows := mock.NewRows(userRows)
	for i, uuid := range []string{"u1", "u2", "u3"} {
		rows.AddRow(uuid, "Alice", uuid+"@x.com", "default.jpg", model.RoleUser, "hash", nil,
			nil, nil, nil, nil, true, false, created.Add(time.Duration(i)*time.Minute))
	}

	mock.ExpectQuery(`SELECT (.+) FROM users`).
		WithArgs(time.Time{}, 3).
		WillReturnRows(rows)

	users, nextCursor, err := repo.ListUsers(context.Background(), db, "", 2)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, users[1].CreatedAt.Format(time.RFC3339Nano), nextCursor)
	assert.NoError(t, mock.ExpectationsWereMet())
}
