package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the custom claims carried by provider-issued session tokens.
// The provider puts the stable user identifier in the registered Subject.
type Claims struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ImageURL  string `json:"image_url,omitempty"`
	jwt.RegisteredClaims
}

// Verifier validates session tokens issued by the identity provider.
// Tokens are HS256 over a shared secret; this service never issues them.
type Verifier struct {
	secret string
	issuer string
}

// NewVerifier creates a session verifier
func NewVerifier(secret, issuer string) *Verifier {
	return &Verifier{
		secret: secret,
		issuer: issuer,
	}
}

// Verify parses and validates a session token and returns its claims
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(v.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}
	if v.issuer != "" {
		issuer, err := claims.GetIssuer()
		if err != nil || issuer != v.issuer {
			return nil, fmt.Errorf("unexpected token issuer")
		}
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("session token has no subject")
	}
	return claims, nil
}
