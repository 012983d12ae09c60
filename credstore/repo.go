package credstore

import "github.com/stocklens/go-inventory-client/users"

// Repo is the durable key-value surface holding the session between runs.
// Implementations persist the token pair under one fixed logical key and the
// cached profile under a second; neither key is ever present without the
// other being at least clearable. The session manager is the only writer.
type Repo interface {
	// Credentials returns the stored token pair, or nil when logged out.
	Credentials() (*Credentials, error)
	// SetCredentials replaces the stored pair wholesale.
	SetCredentials(creds *Credentials) error
	// Profile returns the cached user profile, or nil when absent.
	Profile() (*users.Profile, error)
	// SetProfile replaces the cached profile.
	SetProfile(profile *users.Profile) error
	// Clear removes both keys. Clearing an empty store is not an error.
	Clear() error
}
