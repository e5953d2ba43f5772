package onboarding

import (
	"context"
	"time"
)

// Codec performs bidirectional transformation between the wire representation
// A (what the form field holds) and the domain representation B.
type Codec[A, B any] interface {
	Decode(ctx context.Context, a A) (B, error)
	Encode(ctx context.Context, b B) (A, error)
}

// AgeAt returns the age in whole years at the given instant, taking into
// account whether the birthday has been reached in that year.
func AgeAt(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
