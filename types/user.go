package types

// User represents an account in the system.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Email is the unique address the user registers and logs in with.
	// It is also the subject encoded into access tokens.
	Email string `json:"email" db:"email"`

	// PasswordHash stores the bcrypt hash of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password"`

	// IsActive reports whether the account is enabled.
	IsActive bool `json:"is_active" db:"is_active"`

	// IsAdmin grants permission to manage categories and promote users.
	IsAdmin bool `json:"is_admin" db:"is_admin"`
}

// UserProfile is the public view of a user.
type UserProfile struct {
	Email string `json:"email"`
}

// Profile returns the public view of the user.
func (u User) Profile() UserProfile {
	return UserProfile{Email: u.Email}
}
