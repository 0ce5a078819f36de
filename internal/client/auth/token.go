// Package auth issues the opaque bearer tokens handed out on login.
package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/recipebox/internal/client/models"
	"github.com/dmitrijs2005/recipebox/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims combines the standard claims with the numeric user id.
type Claims struct {
	jwt.RegisteredClaims
	UserID int `json:"uid"`
}

// Issuer signs tokens with a key generated at construction, so tokens are
// only verifiable by the process that issued them. Consumers must never
// parse tokens; Parse exists for diagnostics and tests.
type Issuer struct {
	key []byte
}

func NewIssuer() *Issuer {
	return &Issuer{key: common.GenerateRandByteArray(32)}
}

// Issue returns a token binding the user id, the issue time and a random id.
// Tokens never expire.
func (i *Issuer) Issue(user models.User, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  strconv.Itoa(user.ID),
			IssuedAt: jwt.NewNumericDate(now),
			ID:       uuid.NewString(),
		},
		UserID: user.ID,
	})
	return token.SignedString(i.key)
}

func (i *Issuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
