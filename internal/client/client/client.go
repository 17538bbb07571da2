package client

import (
	"context"

	"github.com/dmitrijs2005/zivohub/internal/client/models"
)

// AuthService is the hosted identity provider as seen by the client.
//
// GetCurrentUser returns ErrNoSession when no session exists.
type AuthService interface {
	SignUp(ctx context.Context, id models.Identity, password []byte, metadata map[string]string) (*models.Account, error)
	SignInWithPassword(ctx context.Context, id models.Identity, password []byte) (*models.Session, error)
	GetCurrentUser(ctx context.Context) (*models.Account, error)
	ResendVerification(ctx context.Context, id models.Identity) error
	Ping(ctx context.Context) error
	Close() error
}

// DataStore is the hosted record storage used for lessons and homework.
type DataStore interface {
	Query(ctx context.Context, collection string, filter Filter, order *Order) ([]Record, error)
	Insert(ctx context.Context, collection string, record Record) error
}

// Client bundles both collaborators, which the REST implementation serves
// from a single project endpoint.
type Client interface {
	AuthService
	DataStore
}
