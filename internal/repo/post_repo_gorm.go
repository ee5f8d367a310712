package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"artshare/internal/domain"
)

// Column list of the joined read model. The comment count is a correlated
// subquery so listing stays a single statement.
const postViewSelect = `posts.id, posts.title, posts.description, posts.image_url,
posts.author_id, posts.created_at,
users.nickname AS author_nickname,
(SELECT COUNT(*) FROM comments WHERE comments.work_id = posts.id) AS comment_count`

type PostRepo struct{ db *gorm.DB }

func NewPostRepo(db *gorm.DB) *PostRepo { return &PostRepo{db: db} }

func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostRepo) Find(ctx context.Context, id uint) (*domain.Post, error) {
	var p domain.Post
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) View(ctx context.Context, id uint) (*domain.PostView, error) {
	var v domain.PostView
	err := r.viewQuery(ctx).Where("posts.id = ?", id).Take(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *PostRepo) List(ctx context.Context, f domain.PostFilter) ([]domain.PostView, error) {
	q := r.viewQuery(ctx)
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.description) LIKE ?", like, like)
	}
	if f.AuthorID != 0 {
		q = q.Where("posts.author_id = ?", f.AuthorID)
	}
	views := make([]domain.PostView, 0)
	// id breaks ties between posts created within the same instant
	err := q.Order("posts.created_at DESC, posts.id DESC").Find(&views).Error
	return views, err
}

// Delete removes the post and its comments in one transaction. RowsAffected
// of 0 means another delete got there first.
func (r *PostRepo) Delete(ctx context.Context, id uint) (int64, error) {
	var affected int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("work_id = ?", id).Delete(&domain.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&domain.Post{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		return nil
	})
	return affected, err
}

func (r *PostRepo) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("posts").
		Select(postViewSelect).
		Joins("JOIN users ON users.id = posts.author_id")
}
