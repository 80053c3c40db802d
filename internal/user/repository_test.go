// AngelaMos | 2026
// repository_test.go

package user

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

var userRowColumns = []string{
	"id", "first_name", "last_name", "username", "email", "password_hash",
	"about", "role", "account_status", "registration_date", "last_login_date",
}

func newRepoWithMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewRepository(sqlx.NewDb(db, "pgx")), mock
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("u-1", "Ada", "Lovelace", "ada", "ada@example.com",
			"$argon2id$digest", "", RoleUser, StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"registration_date", "last_login_date"}).
			AddRow(now, now))

	u := &User{
		ID:            "u-1",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Username:      "ada",
		Email:         "ada@example.com",
		PasswordHash:  "$argon2id$digest",
		Role:          RoleUser,
		AccountStatus: StatusActive,
	}
	require.NoError(t, repo.Create(context.Background(), u))
	assert.Equal(t, now, u.RegistrationDate)
	require.NotNil(t, u.LastLoginDate)
}

func TestRepository_CreateDuplicateEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`INSERT INTO users`).WillReturnError(uniqueViolation())

	err := repo.Create(context.Background(), &User{ID: "u-2", Email: "ada@example.com"})
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepository_GetByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE email = $1`)).
		WithArgs("Ada@Example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			"u-1", "Ada", "Lovelace", "ada", "Ada@Example.com", "digest",
			"", RoleUser, StatusActive, now, now,
		))

	u, err := repo.GetByEmail(context.Background(), "Ada@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "digest", u.PasswordHash)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM users WHERE id = $1`)).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	_, err := repo.GetByID(context.Background(), "ghost")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_ExistsByEmail(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`)).
		WithArgs("ada@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestRepository_ApplyUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	tmpl := patch.MustTemplate("users", "id",
		patch.Column{Name: "email"},
		patch.Column{Name: "about"},
	)

	stmt, err := tmpl.Build("u-1", patch.Changes{"about": "hi"})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET about = $1 WHERE id = $2`)).
		WithArgs("hi", "u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.ApplyUpdate(context.Background(), stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	stmt, err = tmpl.Build("u-1", patch.Changes{"email": "taken@example.com"})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET email = $1 WHERE id = $2`)).
		WithArgs("taken@example.com", "u-1").
		WillReturnError(uniqueViolation())

	_, err = repo.ApplyUpdate(context.Background(), stmt)
	assert.ErrorIs(t, err, core.ErrDuplicateKey)
}

func TestRepository_UpdateStatusNotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET account_status = $2 WHERE id = $1`)).
		WithArgs("ghost", StatusSuspended).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateStatus(context.Background(), "ghost", StatusSuspended)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_TouchLastLoginAndDelete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET last_login_date = NOW() WHERE id = $1`)).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1`)).
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.TouchLastLogin(context.Background(), "u-1"))
	require.NoError(t, repo.Delete(context.Background(), "u-1"))
}

func TestRepository_List(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT COUNT(*) FROM users WHERE TRUE AND (email ILIKE $1 OR username ILIKE $1) AND account_status = $2`,
	)).
		WithArgs(`%ada\_%`, StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	mock.ExpectQuery(`ORDER BY registration_date DESC\s+LIMIT \$3 OFFSET \$4`).
		WithArgs(`%ada\_%`, StatusActive, 20, 0).
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(
			"u-1", "Ada", "Lovelace", "ada_l", "ada@example.com", "digest",
			"", RoleUser, StatusActive, now, nil,
		))

	users, total, err := repo.List(context.Background(), ListUsersParams{
		Search: "ada_",
		Status: StatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, users, 1)
	assert.Nil(t, users[0].LastLoginDate)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT account_status, COUNT(*) AS count FROM users GROUP BY account_status`,
	)).
		WillReturnRows(sqlmock.NewRows([]string{"account_status", "count"}).
			AddRow(StatusActive, 9).
			AddRow(StatusSuspended, 1))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 9, counts[StatusActive])
	assert.Equal(t, 1, counts[StatusSuspended])
	assert.Equal(t, 0, counts[StatusDeactivated])
}
