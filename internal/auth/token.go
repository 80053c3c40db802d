// AngelaMos | 2026
// token.go

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"

	"github.com/raj-p26/inklink-backend/internal/config"
	"github.com/raj-p26/inklink-backend/internal/core"
)

var (
	ErrInvalidSubject = fmt.Errorf("empty token subject: %w", core.ErrInvalidInput)
	ErrInvalidTTL     = fmt.Errorf("token ttl must be positive: %w", core.ErrInvalidInput)
)

// Token is an issued, signed identity token. It is never stored server side.
type Token struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService signs and verifies HS256 identity tokens with the process
// secret. It is safe for concurrent use; nothing in it changes after
// construction.
type TokenService struct {
	key        jwk.Key
	issuer     string
	defaultTTL int
	now        func() time.Time
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}

	key, err := jwk.Import([]byte(cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("import signing key: %w", err)
	}

	return &TokenService{
		key:        key,
		issuer:     cfg.Issuer,
		defaultTTL: cfg.TokenTTLMinutes,
		now:        time.Now,
	}, nil
}

// WithClock returns a copy of s that reads time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *s
	clone.now = now
	return &clone
}

func (s *TokenService) DefaultTTL() int {
	return s.defaultTTL
}

// Issue signs {sub, iat, exp} with exp = iat + ttlMinutes.
func (s *TokenService) Issue(subjectID string, ttlMinutes int) (*Token, error) {
	if subjectID == "" {
		return nil, ErrInvalidSubject
	}
	if ttlMinutes <= 0 {
		return nil, ErrInvalidTTL
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(time.Duration(ttlMinutes) * time.Minute)

	builder := jwt.NewBuilder().
		Subject(subjectID).
		IssuedAt(issuedAt).
		Expiration(expiresAt)
	if s.issuer != "" {
		builder = builder.Issuer(s.issuer)
	}

	token, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.key))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &Token{
		Value:     string(signed),
		Subject:   subjectID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *TokenService) IssueDefault(subjectID string) (*Token, error) {
	return s.Issue(subjectID, s.defaultTTL)
}

// Verify returns the subject of a valid token. Forged, malformed and
// expired tokens all fail with core.ErrTokenInvalid and nothing more
// specific.
func (s *TokenService) Verify(tokenString string) (string, error) {
	opts := []jwt.ParseOption{
		jwt.WithKey(jwa.HS256(), s.key),
		jwt.WithValidate(true),
		jwt.WithClock(jwt.ClockFunc(s.now)),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.Parse([]byte(tokenString), opts...)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	if _, ok := token.Expiration(); !ok {
		return "", fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	subject, ok := token.Subject()
	if !ok || subject == "" {
		return "", fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}

	return subject, nil
}
