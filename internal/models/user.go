package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the persisted account record. The password hash and the reset
// token fields are never serialized to clients.
type User struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name              string             `bson:"name" json:"name"`
	Email             string             `bson:"email" json:"email"`
	Photo             string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Role              UserRole           `bson:"role" json:"role"`
	PasswordHash      string             `bson:"password" json:"-"`
	PasswordChangedAt *time.Time         `bson:"password_changed_at,omitempty" json:"-"`
	ResetTokenHash    string             `bson:"password_reset_token,omitempty" json:"-"`
	ResetTokenExp     *time.Time         `bson:"password_reset_expires,omitempty" json:"-"`
	Active            bool               `bson:"active" json:"-"`
	CreatedAt         time.Time          `bson:"created_at" json:"created_at"`
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time. A token issued before the last password change is
// permanently stale, even when it has not expired yet.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	// JWT iat has second precision, compare at the same resolution.
	return issuedAt.Unix() < u.PasswordChangedAt.Unix()
}
