package service

import "gorm.io/gorm"

// Identity is the acting party for votes and reactions: either an
// authenticated user id or a guest email, never both. It is passed
// explicitly into every operation; services never read ambient
// session state.
type Identity struct {
	UserID int
	Email  string
}

// UserIdentity builds an authenticated identity.
func UserIdentity(id int) Identity {
	return Identity{UserID: id}
}

// GuestIdentity builds a guest identity keyed on email.
func GuestIdentity(email string) Identity {
	return Identity{Email: email}
}

// Authenticated reports whether the identity is a logged-in user.
func (i Identity) Authenticated() bool {
	return i.UserID != 0
}

// userIDPtr returns the nullable user_id column value for this identity.
func (i Identity) userIDPtr() *int {
	if !i.Authenticated() {
		return nil
	}
	id := i.UserID
	return &id
}

// emailPtr returns the nullable email column value for this identity.
func (i Identity) emailPtr() *string {
	if i.Authenticated() {
		return nil
	}
	email := i.Email
	return &email
}

// scope narrows a query to rows owned by this identity on one poll.
func (i Identity) scope(q *gorm.DB, pollID int) *gorm.DB {
	if i.Authenticated() {
		return q.Where("poll_id = ? AND user_id = ?", pollID, i.UserID)
	}
	return q.Where("poll_id = ? AND email = ?", pollID, i.Email)
}
