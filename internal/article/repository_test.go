// AngelaMos | 2026
// repository_test.go

package article

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

var articleRowColumns = []string{
	"id", "user_id", "title", "content", "status",
	"report_count", "creation_date", "author_username",
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

func TestRepository_Create(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO articles \(id, user_id, title, content, status\)`).
		WithArgs("a-1", "u-1", "Title", "Body", StatusDraft).
		WillReturnRows(sqlmock.NewRows([]string{"report_count", "creation_date"}).
			AddRow(0, created))

	a := &Article{ID: "a-1", UserID: "u-1", Title: "Title", Content: "Body", Status: StatusDraft}
	require.NoError(t, repo.Create(context.Background(), a))
	assert.Equal(t, created, a.CreationDate)
}

func TestRepository_GetByID(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2026, 2, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.id = $1`)).
		WithArgs("a-1").
		WillReturnRows(sqlmock.NewRows(articleRowColumns).
			AddRow("a-1", "u-1", "T", "C", StatusPublished, 3, created, "alice"))

	a, err := repo.GetByID(context.Background(), "a-1")
	require.NoError(t, err)
	assert.Equal(t, "alice", a.AuthorUsername)
	assert.Equal(t, 3, a.ReportCount)
	assert.True(t, a.IsPublished())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(articleRowColumns))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_ListByOwner_StatusAndLimit(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`WHERE a.user_id = $1 AND a.status = $2 ORDER BY a.creation_date DESC LIMIT $3`,
	)).
		WithArgs("u-1", StatusPublished, 7).
		WillReturnRows(sqlmock.NewRows(articleRowColumns))

	articles, err := repo.ListByOwner(context.Background(), "u-1", ListOptions{
		Status: StatusPublished,
		Limit:  7,
	})
	require.NoError(t, err)
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestRepository_ListPublished(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE a.status = $1 ORDER BY a.creation_date DESC LIMIT $2`)).
		WithArgs(StatusPublished, 10).
		WillReturnRows(sqlmock.NewRows(articleRowColumns).
			AddRow("a-2", "u-1", "T2", "C", StatusPublished, 0, now, "alice").
			AddRow("a-1", "u-2", "T1", "C", StatusPublished, 0, now.Add(-time.Hour), "bob"))

	articles, err := repo.ListPublished(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, articles, 2)
	assert.Equal(t, "bob", articles[1].AuthorUsername)
}

func TestRepository_ApplyUpdate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	stmt, err := UpdateTemplate.Build("a-1", patch.Changes{"content": "new", "title": "T"})
	require.NoError(t, err)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE articles SET title = $1, content = $2 WHERE id = $3`)).
		WithArgs("T", "new", "a-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rows, err := repo.ApplyUpdate(context.Background(), stmt)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM articles WHERE id = $1`)).
		WithArgs("a-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "a-1")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_DeleteDBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM articles WHERE id = $1`)).
		WithArgs("a-1").
		WillReturnError(errors.New("db down"))

	err := repo.Delete(context.Background(), "a-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
	assert.NotErrorIs(t, err, core.ErrNotFound)
}

func TestRepository_CountByStatus(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT status, COUNT(*) AS count FROM articles GROUP BY status`)).
		WillReturnRows(sqlmock.NewRows([]string{"status", "count"}).
			AddRow(StatusPublished, 4).
			AddRow(StatusDraft, 2))

	counts, err := repo.CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		StatusDraft:     2,
		StatusPublished: 4,
		StatusArchived:  0,
	}, counts)
}
