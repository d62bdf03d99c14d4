package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

const postSelect = `
		SELECT p.id, p.title, p.content, p.category_id, p.user_id, p.time_created, p.time_updated,
		       (SELECT COUNT(1) FROM likes l WHERE l.post_id = p.id AND l.liked) AS likes_count
		FROM posts p`

// PostRepository handles persistence for posts.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) List(ctx context.Context) ([]types.Post, error) {
	const query = postSelect + ` ORDER BY p.id`
	return r.queryPosts(ctx, query)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int) ([]types.Post, error) {
	const query = postSelect + ` WHERE p.user_id = $1 ORDER BY p.id`
	return r.queryPosts(ctx, query, userID)
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	const query = postSelect + ` WHERE p.id = $1`
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}
	return post, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	post.TimeCreated = time.Now().UTC()
	post.TimeUpdated = nil
	post.LikesCount = 0

	const query = `
		INSERT INTO posts (title, content, category_id, user_id, time_created)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.CategoryID,
		post.UserID,
		post.TimeCreated,
	).Scan(&post.ID); err != nil {
		return types.Post{}, translate(err)
	}
	return post, nil
}

func (r *PostRepository) Update(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now().UTC()

	const query = `
		UPDATE posts
		SET title = $1,
			content = $2,
			category_id = $3,
			time_updated = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		post.Title,
		post.Content,
		post.CategoryID,
		now,
		post.ID,
	)
	if err != nil {
		return types.Post{}, translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Post{}, err
	}
	if affected == 0 {
		return types.Post{}, ErrNotFound
	}

	return r.Get(ctx, post.ID)
}

func (r *PostRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM posts WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]types.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

func scanPost(row rowScanner) (types.Post, error) {
	var post types.Post
	var updated sql.NullTime
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CategoryID,
		&post.UserID,
		&post.TimeCreated,
		&updated,
		&post.LikesCount,
	); err != nil {
		return types.Post{}, err
	}
	if updated.Valid {
		t := updated.Time
		post.TimeUpdated = &t
	}
	return post, nil
}
