// AngelaMos | 2026
// repository.go

package article

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

type Repository interface {
	Create(ctx context.Context, article *Article) error
	GetByID(ctx context.Context, id string) (*Article, error)
	ListByOwner(ctx context.Context, ownerID string, opts ListOptions) ([]Article, error)
	ListPublished(ctx context.Context, limit int) ([]Article, error)
	ApplyUpdate(ctx context.Context, stmt patch.Statement) (int64, error)
	Delete(ctx context.Context, id string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

// ListOptions narrows an owner listing. Zero values mean no filter and no
// limit.
type ListOptions struct {
	Status string
	Limit  int
}

const selectArticles = `
		SELECT a.id, a.user_id, a.title, a.content, a.status, a.report_count,
		       a.creation_date, u.username AS author_username
		FROM articles a
		JOIN users u ON u.id = a.user_id`

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, article *Article) error {
	query := `
		INSERT INTO articles (id, user_id, title, content, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING report_count, creation_date`

	row := r.db.QueryRowxContext(ctx, query,
		article.ID,
		article.UserID,
		article.Title,
		article.Content,
		article.Status,
	)
	if err := row.Scan(&article.ReportCount, &article.CreationDate); err != nil {
		return fmt.Errorf("create article: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Article, error) {
	query := selectArticles + ` WHERE a.id = $1`

	var article Article
	err := r.db.GetContext(ctx, &article, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}

	return &article, nil
}

func (r *repository) ListByOwner(
	ctx context.Context,
	ownerID string,
	opts ListOptions,
) ([]Article, error) {
	query := selectArticles + ` WHERE a.user_id = $1`
	args := []any{ownerID}

	if opts.Status != "" {
		args = append(args, opts.Status)
		query += fmt.Sprintf(" AND a.status = $%d", len(args))
	}

	query += ` ORDER BY a.creation_date DESC`

	if opts.Limit > 0 {
		args = append(args, opts.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	articles := []Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("list articles by owner: %w", err)
	}

	return articles, nil
}

// ListPublished returns published articles, newest first. limit <= 0
// returns all of them.
func (r *repository) ListPublished(
	ctx context.Context,
	limit int,
) ([]Article, error) {
	query := selectArticles + ` WHERE a.status = $1 ORDER BY a.creation_date DESC`
	args := []any{StatusPublished}

	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	articles := []Article{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("list published articles: %w", err)
	}

	return articles, nil
}

func (r *repository) ApplyUpdate(
	ctx context.Context,
	stmt patch.Statement,
) (int64, error) {
	result, err := r.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, fmt.Errorf("update article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update article: %w", err)
	}

	return rows, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete article: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[string]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM articles GROUP BY status`

	var rows []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	counts := map[string]int{StatusDraft: 0, StatusPublished: 0, StatusArchived: 0}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
