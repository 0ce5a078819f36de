package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/auth"
	"github.com/dmitrijs2005/recipebox/internal/client/credentials"
	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/common"
)

// Figures reported by the synthesized profile payload.
const (
	profileFavorites    = 5
	profileSavedRecipes = 12
)

type LocalClient struct {
	verifier   credentials.Verifier
	issuer     *auth.Issuer
	loginDelay time.Duration
	fetchDelay time.Duration
	now        func() time.Time
}

// NewLocalClient builds a simulated backend. Zero delays skip the wait.
func NewLocalClient(v credentials.Verifier, issuer *auth.Issuer, loginDelay, fetchDelay time.Duration) *LocalClient {
	return &LocalClient{
		verifier:   v,
		issuer:     issuer,
		loginDelay: loginDelay,
		fetchDelay: fetchDelay,
		now:        time.Now,
	}
}

func (c *LocalClient) Login(ctx context.Context, username string, password []byte) (*models.Session, error) {
	if err := wait(ctx, c.loginDelay); err != nil {
		return nil, err
	}

	user, ok := c.verifier.Verify(ctx, username, password)
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	token, err := c.issuer.Issue(user, c.now())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &models.Session{User: user, Token: token}, nil
}

func (c *LocalClient) FetchProtected(ctx context.Context, token string, user models.User) (*models.ProtectedData, error) {
	if token == "" {
		return nil, common.ErrUnauthenticated
	}
	if err := wait(ctx, c.fetchDelay); err != nil {
		return nil, err
	}

	now := c.now().UTC()
	return &models.ProtectedData{
		Message:   "Protected data for " + user.FullName,
		User:      user,
		Timestamp: now,
		Data: models.ProfileCounts{
			Favorites:    profileFavorites,
			SavedRecipes: profileSavedRecipes,
			LastVisit:    now,
		},
	}, nil
}

func (c *LocalClient) Close() error {
	return nil
}

// wait blocks for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
