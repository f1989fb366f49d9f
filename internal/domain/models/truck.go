package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Truck is an available-truck posting on the truck board.
// It mirrors Load: the same trailer vocabulary and date rules apply.
type Truck struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TruckNumber   string             `bson:"truck_number" json:"truck_number"`
	AvailableDate string             `bson:"available_date" json:"available_date"` // YYYY-MM-DD
	Origin        string             `bson:"origin" json:"origin"`
	Destination   string             `bson:"destination,omitempty" json:"destination,omitempty"`
	TrailerType   string             `bson:"trailer_type" json:"trailer_type"`
	Comment       string             `bson:"comment,omitempty" json:"comment,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
