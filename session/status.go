package session

import "github.com/stocklens/go-inventory-client/users"

// Status is the session lifecycle state.
type Status int

const (
	// StatusLoading covers the initial bootstrap and in-flight
	// login/refresh.
	StatusLoading Status = iota
	// StatusAnonymous means no valid credentials are held.
	StatusAnonymous
	// StatusAuthenticated means a token pair and profile are held.
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	}
	return "unknown"
}

// Snapshot is an immutable view of the session handed to subscribers. User
// is non-nil only while authenticated; a profile is never valid without
// credentials backing it.
type Snapshot struct {
	Status Status
	User   *users.Profile
}
