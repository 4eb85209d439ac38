// Package uuid wraps google/uuid so that IDs can be bound from URI
// and query parameters by gin.
package uuid

import (
	google_uuid "github.com/google/uuid"
)

type UUID struct {
	google_uuid.UUID
}

var Nil UUID

func New() UUID {
	return UUID{google_uuid.New()}
}

func NewString() string {
	return google_uuid.NewString()
}

// Parse parses s into a UUID. The empty string parses to Nil.
func Parse(s string) (UUID, error) {
	if s == "" {
		return Nil, nil
	}

	parsed, err := google_uuid.Parse(s)
	if err != nil {
		return Nil, err
	}

	return UUID{parsed}, nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := Parse(p)
	if err != nil {
		return err
	}

	*u = parsed
	return nil
}

// Google returns the wrapped google/uuid value used by the models.
func (u UUID) Google() google_uuid.UUID {
	return u.UUID
}
