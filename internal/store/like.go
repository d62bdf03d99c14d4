package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

// LikeRepository handles persistence for likes. A post has at most one
// like row, keyed by post_id.
type LikeRepository struct {
	db *sql.DB
}

func NewLikeRepository(db *sql.DB) *LikeRepository {
	return &LikeRepository{db: db}
}

func (r *LikeRepository) GetByPost(ctx context.Context, postID int) (types.Like, error) {
	const query = `SELECT id, post_id, user_id, liked FROM likes WHERE post_id = $1`
	var like types.Like
	err := r.db.QueryRowContext(ctx, query, postID).Scan(&like.ID, &like.PostID, &like.UserID, &like.Liked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Like{}, ErrNotFound
		}
		return types.Like{}, err
	}
	return like, nil
}

// Toggle flips the like state of a post and returns the new state. The
// first toggle creates the row with liked set. The read and the write run
// in one transaction holding a row lock, and the insert path upserts on the
// post_id key so two concurrent first likes cannot both insert.
func (r *LikeRepository) Toggle(ctx context.Context, postID, userID int) (liked bool, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const selectQuery = `SELECT id, liked FROM likes WHERE post_id = $1 FOR UPDATE`
	var (
		id      int
		current bool
	)
	err = tx.QueryRowContext(ctx, selectQuery, postID).Scan(&id, &current)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		const insertQuery = `
			INSERT INTO likes (post_id, user_id, liked)
			VALUES ($1, $2, TRUE)
			ON CONFLICT (post_id) DO UPDATE SET liked = NOT likes.liked
			RETURNING liked`
		err = tx.QueryRowContext(ctx, insertQuery, postID, userID).Scan(&liked)
	case err != nil:
		return false, err
	default:
		const updateQuery = `UPDATE likes SET liked = NOT liked WHERE id = $1 RETURNING liked`
		err = tx.QueryRowContext(ctx, updateQuery, id).Scan(&liked)
	}
	if err != nil {
		err = translate(err)
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}
	return liked, nil
}
