package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PendingRegistration carries a firm registration between the register and
// verify steps. It is created when the registration form is submitted,
// consumed exactly once when verification completes, and cleared on both
// success and abandonment (expired records are swept by a TTL index).
type PendingRegistration struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	EmailCI string             `bson:"email_ci" json:"email_ci"` // normalized administrator email

	// TempPassword is the generated credential used to complete the
	// first sign-in during verification.
	TempPassword string `bson:"temp_password" json:"-"`

	// Firm is the submitted registration payload, written to the firms
	// collection only after the email is verified.
	Firm Firm `bson:"firm" json:"firm"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
}
