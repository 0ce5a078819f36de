// Package credentials verifies usernames and secrets against a known set of
// accounts. The session service depends only on the Verifier interface, so
// the static demo list can be replaced without touching session logic.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/cryptox"
)

type Verifier interface {
	// Verify returns the identity for an exact username/secret match.
	Verify(ctx context.Context, username string, secret []byte) (models.User, bool)
}

type account struct {
	user models.User
	salt []byte
	hash []byte
}

// StaticVerifier checks credentials against an immutable in-memory list.
// Passwords are kept only as salted argon2id hashes.
type StaticVerifier struct {
	accounts map[string]account
	// dummy is hashed for unknown usernames so they cost the same as known ones.
	dummy account
}

func NewStaticVerifier(records []models.CredentialRecord) *StaticVerifier {
	v := &StaticVerifier{accounts: make(map[string]account, len(records))}
	for _, r := range records {
		salt := cryptox.NewSalt()
		v.accounts[r.Username] = account{
			user: r.User(),
			salt: salt,
			hash: cryptox.HashSecret([]byte(r.Password), salt),
		}
	}
	salt := cryptox.NewSalt()
	v.dummy = account{salt: salt, hash: cryptox.HashSecret(nil, salt)}
	return v
}

func (v *StaticVerifier) Verify(ctx context.Context, username string, secret []byte) (models.User, bool) {
	acc, known := v.accounts[username]
	if !known {
		_ = cryptox.VerifySecret(secret, v.dummy.salt, v.dummy.hash)
		return models.User{}, false
	}
	if !cryptox.VerifySecret(secret, acc.salt, acc.hash) {
		return models.User{}, false
	}
	return acc.user, true
}

// DemoAccounts are the built-in accounts offered on the login screen.
func DemoAccounts() []models.CredentialRecord {
	return []models.CredentialRecord{
		{ID: 1, Username: "usuario1", Email: "usuario1@example.com", Password: "password123", FullName: "Usuario Demo"},
		{ID: 2, Username: "chef", Email: "chef@example.com", Password: "chef123", FullName: "Chef Principal"},
		{ID: 3, Username: "admin", Email: "admin@example.com", Password: "admin123", FullName: "Administrador"},
	}
}
