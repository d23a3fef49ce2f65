package enums

import "fmt"

// CastMemberType distinguishes the role a cast member plays in a production.
type CastMemberType string

const (
	CastMemberTypeActor    CastMemberType = "ACTOR"
	CastMemberTypeDirector CastMemberType = "DIRECTOR"
)

var validCastMemberTypes = []CastMemberType{
	CastMemberTypeActor,
	CastMemberTypeDirector,
}

// String returns the literal string for the type.
func (c CastMemberType) String() string {
	return string(c)
}

// IsValid reports whether the type is known.
func (c CastMemberType) IsValid() bool {
	for _, candidate := range validCastMemberTypes {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCastMemberType converts raw input into a CastMemberType.
func ParseCastMemberType(value string) (CastMemberType, error) {
	for _, candidate := range validCastMemberTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid cast member type %q", value)
}
