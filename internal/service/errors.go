package service

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInput marks request data the caller can fix. The HTTP layer maps
// it to a 400 response.
var ErrInvalidInput = errors.New("invalid input")

func validateFecha(fecha string) error {
	if _, err := time.Parse("2006-01-02", fecha); err != nil {
		return fmt.Errorf("%w: fecha must be YYYY-MM-DD", ErrInvalidInput)
	}
	return nil
}

func validateImagenType(contentType string) error {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
		return nil
	}
	return fmt.Errorf("%w: imagen must be jpeg or png", ErrInvalidInput)
}
