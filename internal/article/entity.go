// AngelaMos | 2026
// entity.go

package article

import (
	"time"
)

type Article struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Title        string    `db:"title"`
	Content      string    `db:"content"`
	Status       string    `db:"status"`
	ReportCount  int       `db:"report_count"`
	CreationDate time.Time `db:"creation_date"`

	// AuthorUsername is joined from users on read.
	AuthorUsername string `db:"author_username"`
}

func (a *Article) IsPublished() bool {
	return a.Status == StatusPublished
}

func (a *Article) OwnedBy(userID string) bool {
	return userID != "" && a.UserID == userID
}

const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
