package lead

import (
	"fmt"
	"regexp"
	"strings"
)

// Form field names shared by the browser form and the server-side validator.
const (
	FieldFullName        = "fullName"
	FieldEmailAddress    = "emailAddress"
	FieldPhoneNumber     = "phoneNumber"
	FieldStreetAddress   = "streetAddress"
	FieldCity            = "city"
	FieldState           = "state"
	FieldZipCode         = "zipCode"
	FieldPropertyDetails = "propertyDetails"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
	zipPattern   = regexp.MustCompile(`^[0-9]{5}(-[0-9]{4})?$`)
)

// Submission is a validated, normalized cash offer request from the web form.
type Submission struct {
	FullName        string `json:"fullName"`
	EmailAddress    string `json:"emailAddress"`
	PhoneNumber     string `json:"phoneNumber"`
	StreetAddress   string `json:"streetAddress"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zipCode"`
	PropertyDetails string `json:"propertyDetails,omitempty"`
}

// FieldErrors maps a form field name to the messages for every rule it failed.
type FieldErrors map[string][]string

// Add appends a violation message for a field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether at least one field failed validation.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// Rule describes one validation constraint on a form field. The rule table is
// served to the browser so client-side pre-validation applies the same
// constraints the server enforces.
type Rule struct {
	Field     string `json:"field"`
	Required  bool   `json:"required"`
	MinLength int    `json:"minLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Message   string `json:"message"`
}

type rule struct {
	field     string
	required  bool
	minLength int
	pattern   *regexp.Regexp
	message   string
}

var rules = []rule{
	{field: FieldFullName, required: true, minLength: 2, message: "Full name must be at least 2 characters."},
	{field: FieldEmailAddress, required: true, pattern: emailPattern, message: "Please enter a valid email address."},
	{field: FieldPhoneNumber, required: true, pattern: phonePattern, message: "Please enter a valid phone number."},
	{field: FieldStreetAddress, required: true, minLength: 5, message: "Please enter a valid street address."},
	{field: FieldCity, required: true, minLength: 2, message: "Please enter a valid city."},
	{field: FieldState, required: true, minLength: 2, message: "Please enter a valid state."},
	{field: FieldZipCode, required: true, pattern: zipPattern, message: "Please enter a valid ZIP code."},
	{field: FieldPropertyDetails},
}

func (r rule) check(value string) bool {
	if value == "" {
		return !r.required
	}
	if r.minLength > 0 && len(value) < r.minLength {
		return false
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		return false
	}
	return true
}

// Rules returns the validation rule table in a serializable form.
func Rules() []Rule {
	out := make([]Rule, 0, len(rules))
	for _, r := range rules {
		desc := Rule{
			Field:     r.field,
			Required:  r.required,
			MinLength: r.minLength,
			Message:   r.message,
		}
		if r.pattern != nil {
			desc.Pattern = r.pattern.String()
		}
		out = append(out, desc)
	}
	return out
}

// Parse validates raw form values and returns a normalized Submission.
// On failure it returns nil and the per-field violation messages. Parse is
// pure: it never touches the network or mutates its input.
func Parse(values map[string]string) (*Submission, FieldErrors) {
	trimmed := make(map[string]string, len(rules))
	for _, r := range rules {
		trimmed[r.field] = strings.TrimSpace(values[r.field])
	}

	errs := FieldErrors{}
	for _, r := range rules {
		if !r.check(trimmed[r.field]) {
			errs.Add(r.field, r.message)
		}
	}
	if errs.Any() {
		return nil, errs
	}

	return &Submission{
		FullName:        trimmed[FieldFullName],
		EmailAddress:    trimmed[FieldEmailAddress],
		PhoneNumber:     trimmed[FieldPhoneNumber],
		StreetAddress:   trimmed[FieldStreetAddress],
		City:            trimmed[FieldCity],
		State:           trimmed[FieldState],
		ZipCode:         trimmed[FieldZipCode],
		PropertyDetails: trimmed[FieldPropertyDetails],
	}, nil
}

// PropertyAddress returns the single human-readable address handed to backends.
func (s *Submission) PropertyAddress() string {
	return fmt.Sprintf("%s, %s, %s %s", s.StreetAddress, s.City, s.State, s.ZipCode)
}

// FormValues re-serializes the submission to raw form values. A parsed
// submission round-trips through FormValues and Parse unchanged.
func (s *Submission) FormValues() map[string]string {
	values := map[string]string{
		FieldFullName:      s.FullName,
		FieldEmailAddress:  s.EmailAddress,
		FieldPhoneNumber:   s.PhoneNumber,
		FieldStreetAddress: s.StreetAddress,
		FieldCity:          s.City,
		FieldState:         s.State,
		FieldZipCode:       s.ZipCode,
	}
	if s.PropertyDetails != "" {
		values[FieldPropertyDetails] = s.PropertyDetails
	}
	return values
}
