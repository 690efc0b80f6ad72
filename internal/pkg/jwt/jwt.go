// Package jwt issues and verifies the short-lived access tokens. Verification
// is stateless: validity is purely signature + registered claims, no storage
// round-trip. Role names are embedded at issuance, so a role change only takes
// effect once the current token expires (bounded by the access TTL).
package jwt

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"surveyhub/internal/domain"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Username string   `json:"unique_name"`
	Email    string   `json:"email"`
	Roles    []string `json:"roles"`
	jwtlib.RegisteredClaims
}

// UserID parses the subject claim back into the user identifier.
func (c *Claims) UserID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}
	return id, nil
}

type Service struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration

	now func() time.Time
}

func New(secret, issuer, audience string, ttl time.Duration) *Service {
	return &Service{
		secret:   []byte(secret),
		issuer:   issuer,
		audience: audience,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Issue signs a token for the user with the role set captured at this moment.
// Every token carries a random jti for traceability; it plays no part in
// revocation.
func (s *Service) Issue(user *domain.User, roles []string) (string, error) {
	now := s.now()
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    s.issuer,
			Audience:  jwtlib.ClaimStrings{s.audience},
			ID:        uuid.NewString(),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks signature, issuer, audience and expiry. Clock-skew leeway is
// zero: a token is rejected the instant it expires.
func (s *Service) Verify(tokenStr string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{},
		func(t *jwtlib.Token) (any, error) { return s.secret, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.issuer),
		jwtlib.WithAudience(s.audience),
		jwtlib.WithIssuedAt(),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
