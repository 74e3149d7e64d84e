package listing

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrNotFound is returned when the API answers successfully but carries no vehicle.
var ErrNotFound = errors.New("no vehicle data found")

// ErrInvalidID is returned for ids that cannot name a vehicle.
var ErrInvalidID = errors.New("invalid vehicle id")

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Resource string
	Code     int
	Status   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %s", e.Resource, e.Status)
}

// IsNotFound reports whether err means the vehicle does not exist, either
// because the envelope was empty or because the API answered 404.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Code == 404
}

var idPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,63}$`)

// ValidID reports whether id is safe to place in an API path and in markup.
func ValidID(id string) bool {
	return idPattern.MatchString(id)
}
