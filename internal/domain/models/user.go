package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles.
const (
	RoleAdmin   = "Admin"
	RoleRegular = "Regular"
)

// Roles lists the accepted directory roles.
var Roles = []string{RoleAdmin, RoleRegular}

// User is a lightweight directory entry, distinct from the identity account.
// The two are linked only by matching email; there is no foreign key.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirstName string             `bson:"first_name" json:"first_name"`
	LastName  string             `bson:"last_name" json:"last_name"`
	Email     string             `bson:"email" json:"email"`
	EmailCI   string             `bson:"email_ci" json:"email_ci"` // lower-cased lookup field
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Role      string             `bson:"role" json:"role"` // Admin | Regular

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
