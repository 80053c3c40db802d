// AngelaMos | 2026
// dto.go

package article

import (
	"time"

	"github.com/raj-p26/inklink-backend/internal/patch"
)

// CreateArticleRequest carries no owner; the owner is always the caller.
type CreateArticleRequest struct {
	Title   string `json:"title"   validate:"required,min=1,max=200"`
	Content string `json:"content" validate:"required,min=1"`
	Status  string `json:"status"  validate:"omitempty,oneof=draft published archived"`
}

type UpdateArticleRequest struct {
	Title   *string `json:"title,omitempty"   validate:"omitempty,min=1,max=200"`
	Content *string `json:"content,omitempty" validate:"omitempty,min=1"`
}

func (r UpdateArticleRequest) Changes() patch.Changes {
	return patch.Changes{}.
		SetIf("title", r.Title).
		SetIf("content", r.Content)
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published archived"`
}

type ArticleResponse struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	Status         string    `json:"status"`
	ReportCount    int       `json:"report_count"`
	CreationDate   time.Time `json:"creation_date"`
}

func ToArticleResponse(a *Article) ArticleResponse {
	return ArticleResponse{
		ID:             a.ID,
		AuthorID:       a.UserID,
		AuthorUsername: a.AuthorUsername,
		Title:          a.Title,
		Content:        a.Content,
		Status:         a.Status,
		ReportCount:    a.ReportCount,
		CreationDate:   a.CreationDate,
	}
}

func ToArticleResponseList(articles []Article) []ArticleResponse {
	responses := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		responses = append(responses, ToArticleResponse(&a))
	}
	return responses
}
