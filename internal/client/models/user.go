package models

// User is the identity of a logged-in account. It is what gets persisted
// under the authUser key, so the JSON names are part of the durable format.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

// Valid reports whether u looks like a real identity.
func (u User) Valid() bool {
	return u.Username != ""
}

// CredentialRecord is a static account used only for local verification.
// It is never persisted.
type CredentialRecord struct {
	ID       int
	Username string
	Email    string
	Password string
	FullName string
}

// User returns the identity part of the record, without the password.
func (c CredentialRecord) User() User {
	return User{ID: c.ID, Username: c.Username, Email: c.Email, FullName: c.FullName}
}
