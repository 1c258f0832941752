package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"school_cms/internal/models"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

var _ Posts = (*PostRepository)(nil)

const (
	insertPostSQL = `
		INSERT INTO posts (title, content, images, category, author_id, active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectActivePostsSQL = `
		SELECT id, title, content, images, category, author_id, active, created_at
		FROM posts WHERE active = 1 ORDER BY created_at DESC
	`
	selectPostsByCategorySQL = `
		SELECT id, title, content, images, category, author_id, active, created_at
		FROM posts WHERE category = ? ORDER BY created_at DESC
	`
)

// marshalImages converts the URL slice to a JSON string column value.
func marshalImages(urls []string) (string, error) {
	b, err := json.Marshal(urls)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalImages(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var urls []string
	if err := json.Unmarshal([]byte(s), &urls); err != nil {
		return nil, err
	}
	return urls, nil
}

// Create inserts a post and returns its ID.
func (r *PostRepository) Create(ctx context.Context, p models.Post) (int, error) {
	imagesJSON, err := marshalImages(p.Images)
	if err != nil {
		return 0, fmt.Errorf("marshal post images: %w", err)
	}

	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	res, err := r.db.ExecContext(ctx, insertPostSQL,
		p.Title, p.Content, imagesJSON, p.Category, p.AuthorID, p.Active, createdAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert post %q: %w", p.Title, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for post %q: %w", p.Title, err)
	}
	return int(lastID), nil
}

func (r *PostRepository) ListActive(ctx context.Context) ([]models.Post, error) {
	return r.queryPosts(ctx, selectActivePostsSQL)
}

func (r *PostRepository) ListByCategory(ctx context.Context, category string) ([]models.Post, error) {
	return r.queryPosts(ctx, selectPostsByCategorySQL, category)
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]models.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select posts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var posts []models.Post
	for rows.Next() {
		var p models.Post
		var imagesJSON sql.NullString
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &imagesJSON, &p.Category, &p.AuthorID, &p.Active, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post row: %w", err)
		}
		p.Images, err = unmarshalImages(imagesJSON.String)
		if err != nil {
			return nil, fmt.Errorf("unmarshal post images: %w", err)
		}
		p.CreatedAt = p.CreatedAt.UTC()
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate post rows: %w", err)
	}
	return posts, nil
}
