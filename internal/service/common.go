package service

import (
	"errors"
	"time"

	"dexboard/backend/internal/repository"
	"dexboard/backend/internal/util"
)

// Clock returns the current time; services take one so tests can pin "now"
type Clock func() time.Time

// UTCNow is the production clock
func UTCNow() time.Time {
	return time.Now().UTC()
}

// notFoundOr maps repository.ErrNotFound onto notFound and anything else onto a 500 with message
func notFoundOr(err error, notFound *util.AppError, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return notFound
	}
	return util.ErrInternalServer(message, err)
}

// internal wraps a store failure, passing AppErrors through untouched
func internal(err error, message string) error {
	if util.IsAppError(err) {
		return err
	}
	return util.ErrInternalServer(message, err)
}
