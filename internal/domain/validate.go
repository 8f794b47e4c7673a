package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSubmission checks the required submission fields and the shape of
// the contact email. Extended profile fields are always optional and are
// never rejected here.
func ValidateSubmission(s Submission) error {
	required := []struct {
		field string
		value string
	}{
		{"propertyId", s.PropertyID},
		{"tenantId", s.TenantID},
		{"name", s.Name},
		{"email", s.Email},
		{"phoneNumber", s.PhoneNumber},
	}
	for _, r := range required {
		if r.value == "" {
			return &MissingFieldError{Field: r.field}
		}
	}

	if !emailPattern.MatchString(s.Email) {
		return &InvalidEmailError{Email: s.Email}
	}

	return nil
}

// ParseStatus validates a raw status string against the enum. Matching is
// case-sensitive; anything outside the enum is rejected before any store
// access.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(raw); s {
	case StatusPending, StatusApproved, StatusDenied:
		return s, nil
	default:
		return "", &InvalidStatusError{Value: raw}
	}
}
