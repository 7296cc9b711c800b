// Package auth verifies the HS256 access tokens issued by the platform's
// identity service. Both the HTTP middleware and the websocket upgrade gate
// go through the same verifier.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/fx"

	cfgpkg "github.com/clapboard/membership/pkg/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSubject    = errors.New("token has no subject")
)

// Claims carried by an access token. Subject is the user id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string { return c.Subject }

func (c *Claims) IsAdmin() bool { return c.Role == "Admin" }

type Verifier struct {
	secret []byte
}

func NewVerifier(cfg *cfgpkg.Config) *Verifier {
	return &Verifier{secret: []byte(cfg.Auth.JWTSecret)}
}

// Verify parses and validates an access token, enforcing the HS256 signing
// method.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrNoSubject
	}
	return claims, nil
}

var Module = fx.Options(
	fx.Provide(NewVerifier),
)
