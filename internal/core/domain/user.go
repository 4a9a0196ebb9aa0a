package domain

import "time"

// User models a registered diary owner.
type User struct {
	ID           string    `json:"user_id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Admin        bool      `json:"admin"`
	RegisteredOn time.Time `json:"registered_on"`
}

// Actor identifies the authenticated caller of an operation, carrying just
// enough to evaluate the owner-or-admin access policy.
type Actor struct {
	ID    string
	Admin bool
}

// CanRead reports whether the actor may read an entry owned by ownerID.
func (a Actor) CanRead(ownerID string) bool {
	return a.Admin || a.ID == ownerID
}
