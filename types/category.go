package types

// Category groups posts under a unique title.
type Category struct {
	// ID is the unique identifier of the category.
	ID int `json:"id" db:"id"`

	// Title is the unique, case-sensitive name of the category.
	Title string `json:"title" db:"title"`
}
