package service

import (
	"context"
	"strings"

	"artshare/internal/apperr"
	"artshare/internal/domain"
)

type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
}

func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository) *CommentService {
	return &CommentService{comments: comments, posts: posts}
}

// Create persists a comment on an existing post and returns it joined with
// the author's nickname. Commenting on a missing post is a caller error,
// not a 404: the target id came from the request body.
func (s *CommentService) Create(ctx context.Context, workID, userID uint, content string) (*domain.CommentView, error) {
	if workID == 0 || userID == 0 || strings.TrimSpace(content) == "" {
		return nil, apperr.BadRequest("workId, userId and content are required")
	}
	post, err := s.posts.Find(ctx, workID)
	if err != nil {
		return nil, apperr.Internal("create comment failed", err)
	}
	if post == nil {
		return nil, apperr.BadRequest("target post does not exist")
	}

	c := &domain.Comment{WorkID: workID, UserID: userID, Content: content}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, apperr.Internal("create comment failed", err)
	}
	view, err := s.comments.View(ctx, c.ID)
	if err != nil || view == nil {
		return nil, apperr.Internal("create comment failed", err)
	}
	return view, nil
}

// ListForPost returns the comments on a post, oldest first. A post with no
// comments yields an empty slice, not an error.
func (s *CommentService) ListForPost(ctx context.Context, workID uint) ([]domain.CommentView, error) {
	views, err := s.comments.ListByWork(ctx, workID)
	if err != nil {
		return nil, apperr.Internal("list comments failed", err)
	}
	return views, nil
}

// Delete is owner-only, mirroring post deletion.
func (s *CommentService) Delete(ctx context.Context, id, requesterID uint) error {
	if requesterID == 0 {
		return apperr.BadRequest("userId is required")
	}
	c, err := s.comments.Find(ctx, id)
	if err != nil {
		return apperr.Internal("delete comment failed", err)
	}
	if c == nil {
		return apperr.NotFound("comment not found")
	}
	if c.UserID != requesterID {
		return apperr.Forbidden("only the author may delete this comment")
	}
	affected, err := s.comments.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete comment failed", err)
	}
	if affected == 0 {
		return apperr.NotFound("comment not found")
	}
	return nil
}
