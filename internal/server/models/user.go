package models

// User is a registered account. Records are created once at registration
// and never modified.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
}
