package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nomadfest/api/internal/apperr"
)

// Claims is the verified identity carried by every authenticated request.
// Subject holds the user id. The core trusts these values verbatim; token
// signatures are checked once at the transport edge.
type Claims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) UserRole() Role {
	return Role(c.Role)
}

// IssueToken signs a session token for the given identity.
func IssueToken(secret []byte, userID, email, username string, role Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:    email,
		Username: username,
		Role:     string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperr.Unauthorized("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperr.Unauthorized("invalid or expired token")
	}
	return claims, nil
}
