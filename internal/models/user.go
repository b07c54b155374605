package models

// User is an owner of finance records. Accounts are managed by the identity
// provider; this service only reads them for notifications.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}
