package users

import "time"

// User is an account record. PasswordHash is a salted bcrypt hash; the raw
// password is never stored. The profile image lives in an images.Store.
type User struct {
	ID           string
	CompanyName  string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
