package model

// User holds the account fields chosen at registration.
//
// Password is stored in plaintext on purpose: this is a mock backend for
// frontend development, and the persisted blob is part of its contract.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`

	// Token is the active session token, empty when logged out.
	// At most one session exists per user; logging in again replaces it.
	Token string `json:"token,omitempty"`
}

// UserState extends User with the internal identifier assigned at
// registration. The id is derived from a digest of the username and is
// never reassigned.
type UserState struct {
	User
	ID string `json:"id"`
}
