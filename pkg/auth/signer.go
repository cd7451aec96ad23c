package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EventClaims binds a signature to one registry event.
type EventClaims struct {
	Kind   string `json:"kind"`
	Digest string `json:"digest"`
	Code   string `json:"code,omitempty"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 event signatures.
type Signer struct {
	cfg Config
	now func() time.Time
}

// NewSigner validates cfg and returns a Signer.
func NewSigner(cfg Config) (*Signer, error) {
	cfg.Defaults()
	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if cfg.Alg != "HS256" {
		return nil, errors.New("unsupported jwt alg " + cfg.Alg)
	}
	return &Signer{cfg: cfg, now: time.Now}, nil
}

// Sign returns a compact JWT over claims. id becomes the jti.
func (s *Signer) Sign(id string, claims EventClaims) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.cfg.Issuer,
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}

// Verify parses tokenStr, checks signature, issuer and expiry.
func (s *Signer) Verify(tokenStr string) (*EventClaims, error) {
	claims := &EventClaims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.Secret), nil
	},
		jwt.WithLeeway(s.cfg.ClockSkew),
		jwt.WithIssuer(s.cfg.Issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
