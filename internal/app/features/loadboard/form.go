// internal/app/features/loadboard/form.go
package loadboard

import (
	"net/http"
	"strings"

	"github.com/kirisuberu/connect2bulk/internal/app/system/formutil"
	"github.com/kirisuberu/connect2bulk/internal/app/system/htmlsanitize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/inputval"
	"github.com/kirisuberu/connect2bulk/internal/app/system/normalize"
	"github.com/kirisuberu/connect2bulk/internal/app/system/trailertypes"
	"github.com/kirisuberu/connect2bulk/internal/domain/models"
)

type formData struct {
	formutil.Base

	Load         models.Load
	TrailerTypes []string
	Frequencies  []string

	// Editing switches the form between create and update submission.
	Editing bool
}

// parseLoadForm extracts and validates a load posting from the submitted
// form. The returned message concatenates every problem so the user fixes
// the whole form in one pass; a non-empty message means no store call may be
// made.
func parseLoadForm(r *http.Request) (models.Load, string) {
	load := models.Load{
		PickupDate:           strings.TrimSpace(r.FormValue("pickup_date")),
		DeliveryDate:         strings.TrimSpace(r.FormValue("delivery_date")),
		Origin:               strings.TrimSpace(r.FormValue("origin")),
		Destination:          strings.TrimSpace(r.FormValue("destination")),
		TrailerType:          trailertypes.Normalize(r.FormValue("trailer_type")),
		EquipmentRequirement: strings.TrimSpace(r.FormValue("equipment_requirement")),
		Frequency:            normalize.Frequency(r.FormValue("frequency")),
		Comment:              htmlsanitize.Sanitize(r.FormValue("comment")),
	}

	var msgs []string

	pickup, msg := inputval.ParseDate("Pickup date", load.PickupDate)
	if msg != "" {
		msgs = append(msgs, msg)
	}
	delivery, msg := inputval.ParseDate("Delivery date", load.DeliveryDate)
	if msg != "" {
		msgs = append(msgs, msg)
	} else if !pickup.IsZero() && delivery.Before(pickup) {
		msgs = append(msgs, "Delivery date cannot be earlier than the pickup date.")
	}

	if load.Origin == "" {
		msgs = append(msgs, "Origin is required.")
	}
	if load.Destination == "" {
		msgs = append(msgs, "Destination is required.")
	}
	if !trailertypes.Valid(load.TrailerType) {
		msgs = append(msgs, "Choose a trailer type from the list.")
	}

	miles, msg := inputval.ParseMiles(r.FormValue("miles"))
	if msg != "" {
		msgs = append(msgs, msg)
	}
	load.Miles = miles

	rate, msg := inputval.ParseRate(r.FormValue("rate"))
	if msg != "" {
		msgs = append(msgs, msg)
	}
	load.Rate = rate

	if !validFrequency(load.Frequency) {
		msgs = append(msgs, "Choose a posting frequency.")
	}

	return load, strings.Join(msgs, " ")
}

func validFrequency(f string) bool {
	for _, v := range models.Frequencies {
		if v == f {
			return true
		}
	}
	return false
}
