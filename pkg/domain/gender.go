package domain

import dErrors "classtrack/pkg/domain-errors"

// Gender is a closed domain value.
// Invariant: the value must be one of the supported genders.
//
// Usage: construct via ParseGender at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

var validGenders = map[Gender]bool{
	GenderMale:   true,
	GenderFemale: true,
	GenderOther:  true,
}

// ParseGender constructs a Gender from external input.
//
// Errors: returns CodeInvalidInput when the value is empty or unsupported.
func ParseGender(s string) (Gender, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "gender cannot be empty")
	}
	g := Gender(s)
	if !validGenders[g] {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid gender")
	}
	return g, nil
}

// IsValid checks if the gender is one of the supported enum values.
func (g Gender) IsValid() bool {
	return validGenders[g]
}

// String returns the string representation.
func (g Gender) String() string {
	return string(g)
}
