package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Load frequencies (controlled vocabulary, stored lower-cased).
const (
	FrequencyOnce    = "once"
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// Frequencies lists the accepted posting frequencies.
var Frequencies = []string{FrequencyOnce, FrequencyDaily, FrequencyWeekly, FrequencyMonthly}

// Load is a freight posting on the load board.
//
// LoadNumber is client-generated in the LN-<6 digits>-<4 digits> format.
// TrailerType is stored upper-cased against the fixed vocabulary.
// Ownership of a Load by a Firm is contextual, not a stored reference.
type Load struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoadNumber           string             `bson:"load_number" json:"load_number"`
	PickupDate           string             `bson:"pickup_date" json:"pickup_date"`     // YYYY-MM-DD
	DeliveryDate         string             `bson:"delivery_date" json:"delivery_date"` // YYYY-MM-DD
	Origin               string             `bson:"origin" json:"origin"`
	Destination          string             `bson:"destination" json:"destination"`
	TrailerType          string             `bson:"trailer_type" json:"trailer_type"`
	EquipmentRequirement string             `bson:"equipment_requirement,omitempty" json:"equipment_requirement,omitempty"`
	Miles                int                `bson:"miles,omitempty" json:"miles,omitempty"`
	Rate                 float64            `bson:"rate,omitempty" json:"rate,omitempty"`
	Frequency            string             `bson:"frequency" json:"frequency"` // once | daily | weekly | monthly
	Comment              string             `bson:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
