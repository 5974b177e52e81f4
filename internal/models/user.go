package models

// User represents a registered user account.
//
// PasswordHash is never serialized, so the JSON form of a user is safe to
// return from handlers as-is. Owned watchlists are derived from
// Watchlist.OwnerID rather than stored on the user row.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Username is the unique display name, 2-10 characters.
	Username string `json:"username"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"-"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"-"`
}

// NewUser creates a user with the given identity and an already-hashed
// password. Validation and hashing happen in the auth package before this is
// called; the model itself carries no lifecycle hooks.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}
}
