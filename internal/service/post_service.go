package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/subro/blog-api/internal/cache"
	"github.com/subro/blog-api/internal/domain"
	"github.com/subro/blog-api/internal/repository"
	"github.com/subro/blog-api/internal/storage"
	apperrors "github.com/subro/blog-api/pkg/util"
)

// PostService coordinates post CRUD, search and image attachments.
type PostService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	blobs      storage.BlobStore
	cache      *cache.PostCache
}

// PostDependencies bundles collaborators for the post service.
type PostDependencies struct {
	PostRepo     repository.PostRepository
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	Blobs        storage.BlobStore
	Cache        *cache.PostCache
}

// NewPostService builds the service.
func NewPostService(deps PostDependencies) *PostService {
	return &PostService{
		posts:      deps.PostRepo,
		users:      deps.UserRepo,
		categories: deps.CategoryRepo,
		blobs:      deps.Blobs,
		cache:      deps.Cache,
	}
}

// Create publishes a post under the given author and category. The actor must
// be the author, or an administrator publishing on their behalf.
func (s *PostService) Create(ctx context.Context, actor Actor, authorID, categoryID, title, content string) (*domain.Post, error) {
	if !actor.Owns(authorID) {
		return nil, apperrors.NewForbidden("cannot publish as another user")
	}
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": authorID})
		}
		return nil, err
	}
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
		}
		return nil, err
	}

	post := &domain.Post{
		Title:      title,
		Content:    content,
		AuthorID:   authorID,
		CategoryID: categoryID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns one post, served from the cache when possible.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	if payload, ok := s.cache.Get(ctx, id); ok {
		var post domain.Post
		if err := json.Unmarshal(payload, &post); err == nil {
			return &post, nil
		}
		s.cache.Invalidate(ctx, id)
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": id})
		}
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		s.cache.Set(ctx, id, payload)
	}
	return post, nil
}

// List returns a sorted page of posts.
func (s *PostService) List(ctx context.Context, page repository.PageRequest) (*domain.PostPage, error) {
	return s.posts.List(ctx, page)
}

// ListByAuthor returns every post by the given author.
func (s *PostService) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": authorID})
		}
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, authorID)
}

// ListByCategory returns every post in the given category.
func (s *PostService) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Post, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
		}
		return nil, err
	}
	return s.posts.ListByCategory(ctx, categoryID)
}

// Search returns posts whose title contains the keyword.
func (s *PostService) Search(ctx context.Context, keyword string) ([]*domain.Post, error) {
	return s.posts.SearchByTitle(ctx, keyword)
}

// Update edits a post's title, content and category. Author or administrator only.
func (s *PostService) Update(ctx context.Context, actor Actor, id, title, content, categoryID string) (*domain.Post, error) {
	post, err := s.fetchOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if categoryID != "" && categoryID != post.CategoryID {
		if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, apperrors.NewNotFound("category", map[string]any{"id": categoryID})
			}
			return nil, err
		}
		post.CategoryID = categoryID
	}
	post.Title = title
	post.Content = content

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return post, nil
}

// Delete removes a post. Author or administrator only.
func (s *PostService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.fetchOwned(ctx, actor, id); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	return nil
}

// AttachImage stores the uploaded image and records its generated name on the
// post. Author or administrator only.
func (s *PostService) AttachImage(ctx context.Context, actor Actor, id, originalName string, r io.Reader) (*domain.Post, error) {
	post, err := s.fetchOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	name, err := s.blobs.Store(ctx, originalName, r)
	if err != nil {
		return nil, err
	}

	post.ImageName = name
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, id)
	return post, nil
}

// Image opens a stored post image by its generated name.
func (s *PostService) Image(ctx context.Context, name string) (io.ReadCloser, error) {
	rc, err := s.blobs.Retrieve(ctx, name)
	if err != nil {
		return nil, apperrors.NewNotFound("image", map[string]any{"name": name})
	}
	return rc, nil
}

func (s *PostService) fetchOwned(ctx context.Context, actor Actor, id string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("post", map[string]any{"id": id})
		}
		return nil, err
	}
	if !actor.Owns(post.AuthorID) {
		return nil, apperrors.NewForbidden("cannot modify another user's post")
	}
	return post, nil
}
