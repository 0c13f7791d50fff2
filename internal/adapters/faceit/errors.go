package faceit

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidMatchURL = errors.New("invalid match url")
)

type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("faceit api status %d: %s", e.Status, e.Body)
}
