package token

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for every verification failure. The cause is
// deliberately not exposed to callers.
var ErrInvalidToken = errors.New("invalid token")

var (
	ErrEmptySecret     = errors.New("token secret must not be empty")
	ErrInvalidLifetime = errors.New("token lifetime must be positive")
)

type Config struct {
	Secret   []byte
	Issuer   string
	Audience string
	Lifetime time.Duration
}

// Subject is the identity a token is issued for.
type Subject struct {
	CWID      string
	FirstName string
	LastName  string
	Email     string
}

type Claims struct {
	jwt.RegisteredClaims
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

func (c *Claims) CWID() string {
	return c.Subject
}

// Issued is a signed token together with the claims it carries.
type Issued struct {
	Token     string
	ExpiresAt time.Time
	Claims    *Claims
}

type Option func(*Service)

// WithClock overrides the time source used for issuing and validation.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

type Service struct {
	cfg    Config
	now    func() time.Time
	parser *jwt.Parser
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	if len(cfg.Secret) == 0 {
		return nil, ErrEmptySecret
	}
	if cfg.Lifetime <= 0 {
		return nil, ErrInvalidLifetime
	}

	s := &Service{cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return s.now() }),
	}
	if cfg.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(cfg.Audience))
	}
	s.parser = jwt.NewParser(parserOpts...)

	return s, nil
}

func (s *Service) Lifetime() time.Duration {
	return s.cfg.Lifetime
}

func (s *Service) Issue(sub Subject) (*Issued, error) {
	if sub.CWID == "" {
		return nil, errors.New("token subject must not be empty")
	}

	now := s.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   sub.CWID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Lifetime)),
		},
		FirstName: sub.FirstName,
		LastName:  sub.LastName,
		Email:     sub.Email,
	}
	if s.cfg.Issuer != "" {
		claims.Issuer = s.cfg.Issuer
	}
	if s.cfg.Audience != "" {
		claims.Audience = jwt.ClaimStrings{s.cfg.Audience}
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, err
	}

	return &Issued{
		Token:     signed,
		ExpiresAt: claims.ExpiresAt.Time,
		Claims:    claims,
	}, nil
}

// Verify checks signature, algorithm, expiry, issuer and audience and returns
// the embedded claims. A token is expired once now reaches its exp.
func (s *Service) Verify(raw string) (*Claims, error) {
	if strings.Count(raw, ".") != 2 {
		return nil, ErrInvalidToken
	}

	claims := &Claims{}
	tok, err := s.parser.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return s.cfg.Secret, nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
