package client

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
)

type Client interface {
	// Login verifies the credentials and returns a fresh session.
	Login(ctx context.Context, username string, password []byte) (*models.Session, error)
	// FetchProtected returns data only available with a valid token.
	FetchProtected(ctx context.Context, token string, user models.User) (*models.ProtectedData, error)
	Close() error
}
