package store

import (
	"context"

	"github.com/MKhiriev/pass-guard/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// SessionRepository keeps the client's single login session.
type SessionRepository interface {
	SaveSession(ctx context.Context, session models.Session) error
	// GetSession returns [ErrLocalSessionNotFound] when nobody is logged in.
	GetSession(ctx context.Context) (models.Session, error)
	DeleteSession(ctx context.Context) error
}
