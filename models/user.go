// models/user.go
package models

import "time"

// User roles. Only a mentor may accept, decline or reschedule a booking;
// only a mentee may open a request.
const (
	RoleMentor = "mentor"
	RoleMentee = "mentee"
)

// User represents a platform user.
type User struct {
	ID           string    `bson:"id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Role         string    `bson:"role" json:"role"`
	ImageURL     string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// FullName joins the user's first and last name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
