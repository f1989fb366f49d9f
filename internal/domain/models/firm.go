package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Firm types (controlled vocabulary).
const (
	FirmTypeCarrier = "Carrier"
	FirmTypeShipper = "Shipper"
	FirmTypeBroker  = "Broker"
	FirmTypeOther   = "Other"
)

// FirmTypes lists the accepted firm_type values in display order.
var FirmTypes = []string{FirmTypeCarrier, FirmTypeShipper, FirmTypeBroker, FirmTypeOther}

// ValidFirmType reports whether t is one of the accepted firm types.
func ValidFirmType(t string) bool {
	for _, v := range FirmTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Firm is the business entity behind a registration.
//
// AdministratorEmailCI is the lower-cased lookup field; older records may
// carry mixed case in AdministratorEmail, so natural-key lookups try the
// CI form first and fall back to the raw form.
//
// There is no uniqueness constraint on administrator email: "at most one Firm
// per administrator" is a client-side convention, not enforced by the store.
type Firm struct {
	ID                     primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	FirmName               string             `bson:"firm_name" json:"firm_name"`
	AdministratorEmail     string             `bson:"administrator_email" json:"administrator_email"`
	AdministratorEmailCI   string             `bson:"administrator_email_ci" json:"administrator_email_ci"`
	AdministratorFirstName string             `bson:"administrator_first_name,omitempty" json:"administrator_first_name,omitempty"`
	AdministratorLastName  string             `bson:"administrator_last_name,omitempty" json:"administrator_last_name,omitempty"`

	// Address
	Street  string `bson:"street,omitempty" json:"street,omitempty"`
	City    string `bson:"city,omitempty" json:"city,omitempty"`
	State   string `bson:"state" json:"state"`
	Zip     string `bson:"zip" json:"zip"`
	Country string `bson:"country,omitempty" json:"country,omitempty"`

	// Business identifiers and contact info
	DOT     string `bson:"dot,omitempty" json:"dot,omitempty"`
	MC      string `bson:"mc,omitempty" json:"mc,omitempty"`
	EIN     string `bson:"ein,omitempty" json:"ein,omitempty"`
	Phone   string `bson:"phone,omitempty" json:"phone,omitempty"`
	Website string `bson:"website,omitempty" json:"website,omitempty"`

	// Insurance and compliance
	InsuranceProvider string `bson:"insurance_provider,omitempty" json:"insurance_provider,omitempty"`
	PolicyNumber      string `bson:"policy_number,omitempty" json:"policy_number,omitempty"`
	PolicyExpiry      string `bson:"policy_expiry,omitempty" json:"policy_expiry,omitempty"`
	W9OnFile          bool   `bson:"w9_on_file" json:"w9_on_file"`

	// Branding and notes
	BrandColor string `bson:"brand_color,omitempty" json:"brand_color,omitempty"`
	Notes      string `bson:"notes,omitempty" json:"notes,omitempty"`

	FirmType string `bson:"firm_type" json:"firm_type"` // Carrier | Shipper | Broker | Other

	// Activity counters
	LoadPosts  int `bson:"load_posts" json:"load_posts"`
	TruckPosts int `bson:"truck_posts" json:"truck_posts"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
