// Package services contains server-side business logic: admin sign-in, the
// comment subsystem, catalog CRUD and media presigning.
package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/clinic/internal/common"
	"github.com/google/uuid"
)

// passthrough lists the errors callers are expected to match on. Anything
// else leaving a service is a store failure.
var passthrough = []error{
	common.ErrNotFound,
	common.ErrAlreadyExists,
	common.ErrValidation,
	common.ErrInvalidParent,
	common.ErrInvalidCredentials,
}

func storeError(op string, err error) error {
	if err == nil {
		return nil
	}
	for _, known := range passthrough {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s: %w", common.ErrStoreFailure, op, err)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", common.ErrValidation, msg)
}

// validID reports whether id can name a stored record. Every primary key is
// a UUID, so anything else is a guaranteed miss.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
