package models

// Watchlist represents a named collection of movie IDs owned by one user and
// shared with invited users.
//
// Relationships use ID strings instead of pointers to avoid circular
// references. Owner is populated only by queries that expand it (the list
// endpoint); it is nil otherwise.
type Watchlist struct {
	// ID is the unique identifier for the watchlist (UUID format).
	ID string

	// Name is the display name of the watchlist, 2-10 characters.
	Name string

	// OwnerID references the user who created the watchlist.
	OwnerID string

	// Owner is the expanded owner record, populated by list queries.
	Owner *User

	// InvitedUserIDs are the users granted read access. Uniqueness is
	// enforced by the storage layer.
	InvitedUserIDs []string

	// Movies is the set of external numeric movie IDs on this list.
	Movies []int64

	// CreatedAt is the Unix timestamp when the watchlist was created.
	CreatedAt int64
}
