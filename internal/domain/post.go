package domain

import (
	"context"
	"time"
)

// Post is a published work. AuthorID is set at creation and never reassigned.
type Post struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	ImageURL    *string   `gorm:"size:255" json:"image_url"`
	AuthorID    uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Post) TableName() string { return "posts" }

// PostView is the joined read model served by the API: the post plus the
// author's nickname and the number of comments on it.
type PostView struct {
	ID             uint      `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	ImageURL       *string   `json:"image_url"`
	AuthorID       uint      `json:"author_id"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorNickname string    `json:"author_nickname"`
	CommentCount   int64     `json:"comment_count"`
}

// PostFilter composes with AND; zero values mean "no filter".
type PostFilter struct {
	Search   string
	AuthorID uint
}

type PostRepository interface {
	Create(ctx context.Context, p *Post) error
	// Find returns the bare row, (nil, nil) when absent.
	Find(ctx context.Context, id uint) (*Post, error)
	// View returns the joined read model, (nil, nil) when absent.
	View(ctx context.Context, id uint) (*PostView, error)
	// List returns joined read models, newest first.
	List(ctx context.Context, f PostFilter) ([]PostView, error)
	// Delete removes the post and its comments, reporting how many posts
	// were actually deleted (0 when another delete won the race).
	Delete(ctx context.Context, id uint) (int64, error)
}
