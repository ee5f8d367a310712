package service

import (
	"context"
	"strings"

	"artshare/internal/apperr"
	"artshare/internal/domain"
)

type PostService struct {
	posts domain.PostRepository
	users domain.UserRepository
}

func NewPostService(posts domain.PostRepository, users domain.UserRepository) *PostService {
	return &PostService{posts: posts, users: users}
}

type CreatePostInput struct {
	Title       string
	Description string
	AuthorID    uint
	// ImageURL references an already-stored upload; nil means no image.
	ImageURL *string
}

// Create persists a post and returns it joined with the author's nickname.
// The author must exist; that is checked by lookup, not a DB constraint.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.PostView, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" || in.AuthorID == 0 {
		return nil, apperr.BadRequest("title and authorId are required")
	}
	author, err := s.users.FindByID(ctx, in.AuthorID)
	if err != nil {
		return nil, apperr.Internal("create post failed", err)
	}
	if author == nil {
		return nil, apperr.BadRequest("author does not exist")
	}

	p := &domain.Post{
		Title:       title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		AuthorID:    in.AuthorID,
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, apperr.Internal("create post failed", err)
	}
	view, err := s.posts.View(ctx, p.ID)
	if err != nil || view == nil {
		return nil, apperr.Internal("create post failed", err)
	}
	return view, nil
}

// List returns joined read models, newest first. Search matches title or
// description case-insensitively; filters compose with AND.
func (s *PostService) List(ctx context.Context, f domain.PostFilter) ([]domain.PostView, error) {
	views, err := s.posts.List(ctx, f)
	if err != nil {
		return nil, apperr.Internal("list posts failed", err)
	}
	return views, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (*domain.PostView, error) {
	view, err := s.posts.View(ctx, id)
	if err != nil {
		return nil, apperr.Internal("get post failed", err)
	}
	if view == nil {
		return nil, apperr.NotFound("post not found")
	}
	return view, nil
}

// Delete is owner-only. A concurrent second delete by the owner observes
// not-found, never an internal error.
func (s *PostService) Delete(ctx context.Context, id, requesterID uint) error {
	if requesterID == 0 {
		return apperr.BadRequest("userId is required")
	}
	p, err := s.posts.Find(ctx, id)
	if err != nil {
		return apperr.Internal("delete post failed", err)
	}
	if p == nil {
		return apperr.NotFound("post not found")
	}
	if p.AuthorID != requesterID {
		return apperr.Forbidden("only the author may delete this post")
	}
	affected, err := s.posts.Delete(ctx, id)
	if err != nil {
		return apperr.Internal("delete post failed", err)
	}
	if affected == 0 {
		return apperr.NotFound("post not found")
	}
	return nil
}
