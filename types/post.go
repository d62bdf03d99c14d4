package types

import "time"

// Post represents a piece of content written by a user under a category.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// Title is the headline of the post.
	Title string `json:"title" db:"title"`

	// Content is the body of the post.
	Content string `json:"content" db:"content"`

	// CategoryID references the category the post belongs to.
	CategoryID int `json:"category_id" db:"category_id"`

	// UserID references the owner of the post. Only the owner may
	// update or delete it.
	UserID int `json:"user_id" db:"user_id"`

	// TimeCreated is set once when the post is inserted.
	TimeCreated time.Time `json:"time_created" db:"time_created"`

	// TimeUpdated is nil until the first update and is refreshed
	// on every update afterwards.
	TimeUpdated *time.Time `json:"time_updated" db:"time_updated"`

	// LikesCount is computed from the likes table and is not stored
	// on the post row.
	LikesCount int `json:"likes_count" db:"likes_count"`
}

// PostInput carries the user-editable fields of a post.
type PostInput struct {
	Title      string
	Content    string
	CategoryID int
}
