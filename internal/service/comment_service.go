package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/subro/blog-api/internal/cache"
	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/repository"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// CommentService handles comment creation and removal.
type CommentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	cache    *cache.PostCache
}

// NewCommentService builds the service.
func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, postCache *cache.PostCache) *CommentService {
	return &CommentService{comments: comments, posts: posts, cache: postCache}
}

// Create attaches a comment to a post, authored by the acting user.
func (s *CommentService) Create(ctx context.Context, actor Actor, postID, content string) (*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}

	comment := &domain.Comment{
		Content:  content,
		PostID:   postID,
		AuthorID: actor.ID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, postID)
	return comment, nil
}

// ListByPost returns all comments on a post, oldest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": postID})
		}
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// Delete removes a comment. Comment author or administrator only.
func (s *CommentService) Delete(ctx context.Context, actor Actor, id string) error {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("comment", map[string]any{"id": id})
		}
		return err
	}
	if !actor.Owns(comment.AuthorID) {
		return apperrors.NewForbidden("cannot delete another user's comment")
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, comment.PostID)
	return nil
}
