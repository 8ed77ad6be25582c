// Package auth holds the credential primitives of the server: bcrypt password
// hashing and HS256 session tokens whose subject is the user's email.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenValidity is the session lifetime used when none is configured.
const DefaultTokenValidity = 60 * time.Minute

// timeNow is a seam for tests that need to move the clock.
var timeNow = time.Now

func GenerateToken(subject string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := timeNow()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetSubjectFromToken verifies signature and expiry and returns the subject.
// Expired tokens yield common.ErrTokenExpired, everything else that fails
// verification yields common.ErrInvalidToken.
func GetSubjectFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		// exp has whole-second precision; a token is accepted at its expiry
		// instant and through the rest of that second.
		jwt.WithLeeway(time.Second),
		jwt.WithTimeFunc(timeNow),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
