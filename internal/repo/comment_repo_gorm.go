package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"artshare/internal/domain"
)

const commentViewSelect = `comments.id, comments.work_id, comments.user_id,
comments.content, comments.created_at,
users.nickname AS author_nickname`

type CommentRepo struct{ db *gorm.DB }

func NewCommentRepo(db *gorm.DB) *CommentRepo { return &CommentRepo{db: db} }

func (r *CommentRepo) Create(ctx context.Context, c *domain.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CommentRepo) Find(ctx context.Context, id uint) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) View(ctx context.Context, id uint) (*domain.CommentView, error) {
	var v domain.CommentView
	err := r.viewQuery(ctx).Where("comments.id = ?", id).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *CommentRepo) ListByWork(ctx context.Context, workID uint) ([]domain.CommentView, error) {
	views := make([]domain.CommentView, 0)
	err := r.viewQuery(ctx).
		Where("comments.work_id = ?", workID).
		Order("comments.created_at ASC, comments.id ASC").
		Find(&views).Error
	return views, err
}

func (r *CommentRepo) Delete(ctx context.Context, id uint) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Comment{})
	return res.RowsAffected, res.Error
}

func (r *CommentRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("comments").
		Select(commentViewSelect).
		Joins("JOIN users ON users.id = comments.user_id")
}
