package auth

import (
	"errors"

	"github.com/peerprep/backend/internal/domain"
)

var (
	// ErrForbidden is returned when an authenticated identity lacks admin rights.
	ErrForbidden = errors.New("not authorized to access this resource")
	// ErrMissingIdentity signals a route that runs the gate before resolving a session.
	ErrMissingIdentity = errors.New("authorization gate reached without a resolved identity")
)

// Authorize allows only identities carrying the admin flag.
func Authorize(identity *domain.Identity) error {
	if identity == nil {
		return ErrMissingIdentity
	}
	if !identity.IsAdmin {
		return ErrForbidden
	}
	return nil
}
