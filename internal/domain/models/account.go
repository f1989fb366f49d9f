package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account statuses.
const (
	AccountUnconfirmed = "unconfirmed"
	AccountConfirmed   = "confirmed"
	AccountDisabled    = "disabled"
)

// Account is an identity-provider account: the credential record behind a
// sign-in, separate from the User directory entry and the Firm administrator
// fields, which reference it only by email.
type Account struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	EmailCI      string             `bson:"email_ci" json:"email_ci"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Status       string             `bson:"status" json:"status"` // unconfirmed | confirmed | disabled

	// TempPassword marks an account still on its generated temporary
	// credential; sign-in answers with a new-password-required step.
	TempPassword bool `bson:"temp_password" json:"temp_password"`

	// ResetRequired forces a password reset before the next sign-in completes.
	ResetRequired bool `bson:"reset_required" json:"reset_required"`

	// Attributes holds profile attributes (given_name, family_name,
	// phone_number) keyed by attribute name.
	Attributes map[string]string `bson:"attributes,omitempty" json:"attributes,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
