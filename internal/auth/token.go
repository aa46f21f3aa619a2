package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lagoon-stays/lagoon/internal/rbac"
)

var (
	// ErrTokenMalformed indicates the credential is absent or not in
	// "Bearer <token>" form.
	ErrTokenMalformed = errors.New("auth: malformed credential")
	// ErrTokenExpired indicates the token's expiry has passed.
	ErrTokenExpired = errors.New("auth: token expired")
	// ErrTokenInvalid indicates a signature or structural failure.
	ErrTokenInvalid = errors.New("auth: invalid token")
	// ErrIncompleteClaims indicates a valid token missing identity or role.
	ErrIncompleteClaims = errors.New("auth: incomplete token claims")
)

// Claims carries the signed identity and role for a request.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens. Verification is pure:
// it consults no store, only the token and the signing secret.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService constructs a TokenService.
func NewTokenService(secret []byte, issuer string, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: signing secret required")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}
	return &TokenService{secret: secret, issuer: issuer, ttl: ttl}, nil
}

// Issue signs a token for the given user and role.
func (s *TokenService) Issue(userID uuid.UUID, role rbac.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a raw token string and derives the request principal.
// An absent role is never defaulted; it fails as incomplete claims.
func (s *TokenService) Verify(raw string) (*rbac.Principal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrTokenMalformed
	}
	parsed, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	if s.issuer != "" && claims.Issuer != s.issuer {
		return nil, ErrTokenInvalid
	}
	userID, err := uuid.Parse(strings.TrimSpace(claims.Subject))
	if err != nil {
		return nil, ErrIncompleteClaims
	}
	role := rbac.Role(strings.TrimSpace(claims.Role))
	if !role.Valid() {
		return nil, ErrIncompleteClaims
	}
	return &rbac.Principal{UserID: userID, Role: role}, nil
}

const bearerPrefix = "Bearer "

// VerifyCredential validates an Authorization header value of the form
// "Bearer <token>". Anything not matching that shape is malformed before
// the token itself is inspected.
func (s *TokenService) VerifyCredential(header string) (*rbac.Principal, error) {
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return nil, ErrTokenMalformed
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenMalformed
	}
	return s.Verify(token)
}
