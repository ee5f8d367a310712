package domain

import (
	"context"
	"time"
)

// Comment belongs to one post (work_id keeps the historical column name).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	WorkID    uint      `gorm:"column:work_id;not null;index" json:"work_id"`
	UserID    uint      `gorm:"not null" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Comment) TableName() string { return "comments" }

// CommentView is the comment joined with its author's nickname.
type CommentView struct {
	ID             uint      `json:"id"`
	WorkID         uint      `json:"work_id"`
	UserID         uint      `json:"user_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	AuthorNickname string    `json:"author_nickname"`
}

type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	// Find returns the bare row, (nil, nil) when absent.
	Find(ctx context.Context, id uint) (*Comment, error)
	// View returns the joined read model, (nil, nil) when absent.
	View(ctx context.Context, id uint) (*CommentView, error)
	// ListByWork returns comments on one post, oldest first.
	ListByWork(ctx context.Context, workID uint) ([]CommentView, error)
	Delete(ctx context.Context, id uint) (int64, error)
}
