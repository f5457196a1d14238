package application

import (
	"errors"

	"github.com/KhalidTheCoder/scarlet-aid-server/internal/domain/repository"
	"github.com/KhalidTheCoder/scarlet-aid-server/pkg/apperr"
)

// asNotFound translates the storage layer's ErrNotFound into the error
// taxonomy; other errors pass through untouched.
func asNotFound(err error, msg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.New(apperr.NotFound, msg)
	}
	return err
}
