package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken indicates the token failed verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingSecret indicates no signing secret is configured.
	ErrMissingSecret = errors.New("jwt secret not configured")
)

// Claims is the identity carried by a verified bearer token.
type Claims struct {
	Sub   string
	Email string
}

// Verifier checks bearer tokens signed by the identity provider.
type Verifier struct {
	secret []byte
}

// NewVerifier constructs a Verifier for an HS256 shared secret. An empty
// secret yields a verifier that rejects every token.
func NewVerifier(secret string) *Verifier {
	if secret == "" {
		return &Verifier{}
	}
	return &Verifier{secret: []byte(secret)}
}

// Verify parses and validates a token, returning its identity claims.
// The sub claim is required; email is optional.
func (v *Verifier) Verify(tokenString string) (Claims, error) {
	if len(v.secret) == 0 {
		return Claims{}, ErrMissingSecret
	}

	token, err := jwt.Parse(tokenString,
		func(t *jwt.Token) (interface{}, error) { return v.secret, nil },
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return Claims{}, fmt.Errorf("%w: missing sub claim", ErrInvalidToken)
	}
	email, _ := mapClaims["email"].(string)

	return Claims{Sub: sub, Email: email}, nil
}

// Email extracts the email claim from a token best-effort. A missing secret,
// an unverifiable token, or an absent claim all return ok=false; this path
// never fails loudly because notification email is optional.
func (v *Verifier) Email(tokenString string) (string, bool) {
	claims, err := v.Verify(tokenString)
	if err != nil || claims.Email == "" {
		return "", false
	}
	return claims.Email, true
}
