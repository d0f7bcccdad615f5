// Package uuid wraps google/uuid for IDs in URIs and query strings.
package uuid

import (
	"errors"
	"fmt"

	google_uuid "github.com/google/uuid"
)

var ErrInvalid = errors.New("the specified resource ID is not a valid UUID")

// UUID is a google/uuid UUID that gin can bind from URI parameters and
// query strings.
type UUID struct {
	google_uuid.UUID
}

var Nil UUID

// UnmarshalParam parses the parameter. An empty parameter results in Nil so
// that filters for it are ignored.
func (u *UUID) UnmarshalParam(p string) error {
	if p == "" {
		*u = Nil
		return nil
	}

	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalid, p)
	}

	*u = UUID{parsed}
	return nil
}
