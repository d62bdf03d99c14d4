package types

// Like records the like state of a post. A post has at most one like row;
// toggling flips Liked instead of deleting the row.
type Like struct {
	// ID is the unique identifier of the like row.
	ID int `json:"id" db:"id"`

	// PostID references the liked post.
	PostID int `json:"post_id" db:"post_id"`

	// UserID references the user who first liked the post.
	UserID int `json:"user_id" db:"user_id"`

	// Liked is the current toggle state.
	Liked bool `json:"liked" db:"liked"`
}
