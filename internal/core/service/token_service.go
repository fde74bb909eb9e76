package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/roster-hq/employee-roster/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. It holds no session
// state: verification depends only on the token and the signing key.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue returns a signed token for userID valid for the configured TTL.
func (s *TokenService) Issue(userID int64, role domain.Role) (string, error) {
	now := s.now()
	claims := tokenClaims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify decodes raw into an Identity. Every failure wraps domain.ErrInvalidToken.
func (s *TokenService) Verify(raw string) (domain.Identity, error) {
	var claims tokenClaims
	tkn, err := jwt.ParseWithClaims(raw, &claims,
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("%w: %w", domain.ErrInvalidToken, err)
	}
	if !tkn.Valid {
		return domain.Identity{}, domain.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return domain.Identity{}, fmt.Errorf("%w: bad subject %q", domain.ErrInvalidToken, claims.Subject)
	}
	role := domain.Role(claims.Role)
	if !role.Valid() {
		return domain.Identity{}, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidToken, claims.Role)
	}

	return domain.Identity{UserID: userID, Role: role}, nil
}
