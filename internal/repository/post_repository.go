package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subro/blog-api/internal/domain"
)

// PageRequest controls paginated post listings. Sorting is restricted to a
// whitelist so request parameters never reach the SQL text unchecked.
type PageRequest struct {
	Number  int
	Size    int
	SortBy  string
	SortDir string
}

const (
	DefaultPageSize = 10
	maxPageSize     = 100
)

var sortColumns = map[string]string{
	"title":     "title",
	"createdAt": "created_at",
}

// Normalize clamps the request to safe defaults.
func (p PageRequest) Normalize() PageRequest {
	if p.Number < 0 {
		p.Number = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "title"
	}
	if !strings.EqualFold(p.SortDir, "desc") {
		p.SortDir = "asc"
	} else {
		p.SortDir = "desc"
	}
	return p
}

// PostRepository defines persistence access for posts.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, page PageRequest) (*domain.PostPage, error)
	ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*domain.Post, error)
	SearchByTitle(ctx context.Context, keyword string) ([]*domain.Post, error)
}

type postRepository struct {
	pool *pgxpool.Pool
}

// NewPostRepository returns a Postgres-backed implementation.
func NewPostRepository(pool *pgxpool.Pool) PostRepository {
	return &postRepository{pool: pool}
}

const postColumns = `id, title, content, image_name, author_id, category_id, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *domain.Post) error {
	const query = `
        INSERT INTO posts (title, content, image_name, author_id, category_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		post.Title,
		post.Content,
		post.ImageName,
		post.AuthorID,
		post.CategoryID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
}

func (r *postRepository) Update(ctx context.Context, post *domain.Post) error {
	const query = `
        UPDATE posts SET title=$1, content=$2, image_name=$3, category_id=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		post.Title,
		post.Content,
		post.ImageName,
		post.CategoryID,
		post.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE id=$1`, postColumns)
	return scanPost(r.pool.QueryRow(ctx, query, id))
}

func (r *postRepository) List(ctx context.Context, page PageRequest) (*domain.PostPage, error) {
	page = page.Normalize()

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM posts ORDER BY %s %s LIMIT $1 OFFSET $2`,
		postColumns, sortColumns[page.SortBy], page.SortDir)

	rows, err := r.pool.Query(ctx, query, page.Size, page.Number*page.Size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(page.Size) - 1) / int64(page.Size))
	return &domain.PostPage{
		Items:         posts,
		PageNumber:    page.Number,
		PageSize:      page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (r *postRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE author_id=$1 ORDER BY created_at DESC`, postColumns)
	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *postRepository) ListByCategory(ctx context.Context, categoryID string) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE category_id=$1 ORDER BY created_at DESC`, postColumns)
	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func (r *postRepository) SearchByTitle(ctx context.Context, keyword string) ([]*domain.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts WHERE title ILIKE $1 ORDER BY created_at DESC`, postColumns)
	rows, err := r.pool.Query(ctx, query, "%"+keyword+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectPosts(rows)
}

func scanPost(row pgx.Row) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.ImageName,
		&post.AuthorID,
		&post.CategoryID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &post, nil
}

func collectPosts(rows pgx.Rows) ([]*domain.Post, error) {
	var posts []*domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}
