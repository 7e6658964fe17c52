package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinTimeout is the shortest token lifetime. exp is stored in whole
// seconds, so anything shorter can be expired on issue.
const MinTimeout = time.Second

var (
	// ErrTokenMalformed covers bad format, bad signature and unexpected
	// signing methods. It is reported before any claim is looked at.
	ErrTokenMalformed = errors.New("auth: token malformed")
	ErrTokenInvalid   = errors.New("auth: token subject does not match user")
	ErrTokenExpired   = errors.New("auth: token expired")
)

// Claims holds the typed JWT payload. The subject is the user's email.
type Claims struct {
	jwt.RegisteredClaims
}

// TokenService issues and validates HS256 tokens tied to a user's email.
type TokenService struct {
	secret  []byte
	timeout time.Duration
	now     func() time.Time
}

// Option configures a TokenService.
type Option func(*TokenService)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService raises a timeout below MinTimeout to MinTimeout.
func NewTokenService(secret []byte, timeout time.Duration, opts ...Option) *TokenService {
	if timeout < MinTimeout {
		timeout = MinTimeout
	}
	s := &TokenService{secret: secret, timeout: timeout, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Timeout returns the configured token lifetime.
func (s *TokenService) Timeout() time.Duration { return s.timeout }

// Issue creates a signed token for subject with exp = iat + timeout.
func (s *TokenService) Issue(subject string) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.timeout)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies format and signature only. Expiry is deliberately not
// checked here so Validate can apply its own ordering.
func (s *TokenService) Parse(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrTokenMalformed
	}

	return claims, nil
}

// Subject returns the email embedded in a well-formed token.
func (s *TokenService) Subject(token string) (string, error) {
	claims, err := s.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// Validate checks token against the current account record. The order is
// fixed: subject, expiry, enabled, account expiry, credential expiry,
// lock. The first failing check decides the error.
func (s *TokenService) Validate(token string, account Account) error {
	claims, err := s.Parse(token)
	if err != nil {
		return err
	}

	if claims.Subject != account.Subject {
		return fmt.Errorf("%w: %s", ErrTokenInvalid, claims.Subject)
	}

	if !s.now().Before(claims.ExpiresAt.Time) {
		return fmt.Errorf("%w: %s", ErrTokenExpired, claims.Subject)
	}

	return CheckAccount(account)
}
