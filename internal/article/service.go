// AngelaMos | 2026
// service.go

package article

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/raj-p26/inklink-backend/internal/core"
	"github.com/raj-p26/inklink-backend/internal/middleware"
	"github.com/raj-p26/inklink-backend/internal/patch"
)

const latestFeedSize = 10

var (
	ErrNotOwner         = fmt.Errorf("not the article owner: %w", core.ErrForbidden)
	ErrOwnerInactive    = fmt.Errorf("account is not active: %w", core.ErrForbidden)
	ErrArticlePublished = fmt.Errorf("published articles cannot be deleted: %w", core.ErrConflict)
)

// UpdateTemplate declares the writable articles columns. user_id is not
// among them, so ownership can never change through an update.
var UpdateTemplate = patch.MustTemplate("articles", "id",
	patch.Column{Name: "title"},
	patch.Column{Name: "content"},
	patch.Column{Name: "status"},
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create stores a new article owned by the caller. Drafts are the default.
func (s *Service) Create(
	ctx context.Context,
	owner *middleware.Identity,
	req CreateArticleRequest,
) (*Article, error) {
	if owner == nil {
		return nil, fmt.Errorf("create article: %w", core.ErrUnauthorized)
	}
	if !owner.IsActive() {
		return nil, ErrOwnerInactive
	}

	status := req.Status
	if status == "" {
		status = StatusDraft
	}

	article := &Article{
		ID:             uuid.New().String(),
		UserID:         owner.ID,
		Title:          req.Title,
		Content:        req.Content,
		Status:         status,
		AuthorUsername: owner.Username,
	}

	if err := s.repo.Create(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// GetPublished returns an article to anonymous readers. Drafts and archived
// articles are reported as missing.
func (s *Service) GetPublished(ctx context.Context, id string) (*Article, error) {
	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.IsPublished() {
		return nil, fmt.Errorf("get article: %w", core.ErrNotFound)
	}

	return article, nil
}

func (s *Service) ListAll(ctx context.Context) ([]Article, error) {
	return s.repo.ListPublished(ctx, 0)
}

func (s *Service) ListLatest(ctx context.Context) ([]Article, error) {
	return s.repo.ListPublished(ctx, latestFeedSize)
}

// CountByStatus reports how many articles exist in each status.
func (s *Service) CountByStatus(ctx context.Context) (map[string]int, error) {
	return s.repo.CountByStatus(ctx)
}

func (s *Service) ListMine(ctx context.Context, ownerID string) ([]Article, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("list articles: %w", core.ErrUnauthorized)
	}

	return s.repo.ListByOwner(ctx, ownerID, ListOptions{})
}

// ListLatestByOwner returns the owner's newest published articles.
func (s *Service) ListLatestByOwner(
	ctx context.Context,
	ownerID string,
	limit int,
) ([]ArticleResponse, error) {
	articles, err := s.repo.ListByOwner(ctx, ownerID, ListOptions{
		Status: StatusPublished,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	return ToArticleResponseList(articles), nil
}

func (s *Service) Update(
	ctx context.Context,
	caller *middleware.Identity,
	id string,
	req UpdateArticleRequest,
) (*Article, error) {
	return s.applyOwned(ctx, caller, id, req.Changes())
}

func (s *Service) UpdateStatus(
	ctx context.Context,
	caller *middleware.Identity,
	id, status string,
) (*Article, error) {
	if !ValidStatus(status) {
		return nil, fmt.Errorf(
			"update status: invalid status %q: %w",
			status,
			core.ErrInvalidInput,
		)
	}

	return s.applyOwned(ctx, caller, id, patch.Changes{}.Set("status", status))
}

// Delete removes an unpublished article owned by caller.
func (s *Service) Delete(
	ctx context.Context,
	caller *middleware.Identity,
	id string,
) error {
	article, err := s.loadOwned(ctx, caller, id)
	if err != nil {
		return err
	}

	if article.IsPublished() {
		return ErrArticlePublished
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) loadOwned(
	ctx context.Context,
	caller *middleware.Identity,
	id string,
) (*Article, error) {
	if caller == nil {
		return nil, fmt.Errorf("article access: %w", core.ErrUnauthorized)
	}

	article, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !article.OwnedBy(caller.ID) {
		return nil, ErrNotOwner
	}

	return article, nil
}

func (s *Service) applyOwned(
	ctx context.Context,
	caller *middleware.Identity,
	id string,
	changes patch.Changes,
) (*Article, error) {
	if _, err := s.loadOwned(ctx, caller, id); err != nil {
		return nil, err
	}
	if !caller.IsActive() {
		return nil, ErrOwnerInactive
	}

	stmt, err := UpdateTemplate.Build(id, changes)
	if err != nil {
		return nil, fmt.Errorf("build article update: %w", err)
	}

	rows, err := s.repo.ApplyUpdate(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, fmt.Errorf("update article: %w", core.ErrNotFound)
	}

	return s.repo.GetByID(ctx, id)
}
