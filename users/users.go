package users

// Profile is the authenticated user's account record as served by
// GET /inventory/users/me/. It is a pass-through of server fields; nothing
// in the client derives or mutates it.
type Profile struct {
	ID        int64  `json:"id"`                   // Unique identifier for the user
	Username  string `json:"username"`             // Unique username
	Email     string `json:"email"`                // User's email address
	FirstName string `json:"first_name,omitempty"` // First name of the user
	LastName  string `json:"last_name,omitempty"`  // Last name of the user
}

// FullName joins first and last names, falling back to the username.
func (p Profile) FullName() string {
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	case p.LastName != "":
		return p.LastName
	default:
		return p.Username
	}
}

// RegisterData is the payload for POST /inventory/users/.
type RegisterData struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// ProfileUpdate carries a partial profile for PATCH /inventory/users/me/.
// Nil fields are omitted from the request body so the server leaves them
// untouched.
type ProfileUpdate struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// PasswordChange carries the current and replacement password for
// PATCH /inventory/users/me/. The server re-checks the current password;
// the client ships both verbatim.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
