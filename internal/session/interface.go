package session

// Store keeps the bearer tokens of logged-in users.
type Store interface {
	// Create starts a session for email and returns its token
	Create(email string) (string, error)

	// Lookup returns the email owning token
	Lookup(token string) (string, error)

	// Delete ends a session. Unknown tokens are ignored.
	Delete(token string) error

	// DeleteAllForUser ends every session of a user
	DeleteAllForUser(email string) error
}
