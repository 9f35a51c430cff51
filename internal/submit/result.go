package submit

import (
	"github.com/quickcashhomes/offer-platform/internal/lead"
	"github.com/quickcashhomes/offer-platform/internal/offer"
)

// User-facing messages for each submission outcome.
const (
	MsgInvalid      = "Invalid form data. Please check your entries."
	MsgOfferReady   = "Success! Your cash offer is ready."
	MsgLeadReceived = "Thank you! We received your information and will contact you shortly with a cash offer."
	MsgFailure      = "An unexpected error occurred. Please try again or contact us directly."
)

// Result is the discriminated outcome returned to the form UI.
// Exactly one of the following holds:
//   - Errors is non-empty: validation failed, messages attach to fields
//   - Offer is set: the generator produced a cash offer
//   - Success is true: the lead was delivered to the sales inbox
//   - none of the above: a general backend failure, Message only
type Result struct {
	Success bool             `json:"success,omitempty"`
	Offer   *offer.CashOffer `json:"offer,omitempty"`
	Errors  lead.FieldErrors `json:"errors,omitempty"`
	Message string           `json:"message"`
}

// Outcome is what a backend reports for one handled submission.
type Outcome struct {
	Offer   *offer.CashOffer
	Message string
}
