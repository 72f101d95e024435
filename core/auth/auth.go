package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingToken is returned when no bearer token was presented.
	ErrMissingToken = errors.New("missing bearer token")
	// ErrInvalidToken wraps every token validation failure.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// validMethods are the HMAC algorithms accepted in the token header.
var validMethods = []string{
	jwt.SigningMethodHS256.Alg(),
	jwt.SigningMethodHS384.Alg(),
	jwt.SigningMethodHS512.Alg(),
}

// Claims is the token payload.
type Claims struct {
	Name   string   `json:"name,omitempty"`
	Tenant string   `json:"tenant,omitempty"`
	Roles  []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// Auth validates and mints bearer tokens for one set of Settings.
// It is immutable and safe for concurrent use.
type Auth struct {
	settings Settings
	key      []byte
	parser   *jwt.Parser
}

// New validates the settings and compiles the token validation policy.
func New(settings Settings) (*Auth, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(validMethods),
		jwt.WithIssuer(settings.Issuer),
		jwt.WithAudience(settings.Audience),
		jwt.WithExpirationRequired(),
	}
	if settings.ClockSkewSeconds > 0 {
		opts = append(opts, jwt.WithLeeway(time.Duration(settings.ClockSkewSeconds)*time.Second))
	}

	return &Auth{
		settings: settings,
		key:      []byte(settings.SecretKey),
		parser:   jwt.NewParser(opts...),
	}, nil
}

// Settings returns the settings the policy was built from.
func (a *Auth) Settings() Settings {
	return a.settings
}

// ValidateToken checks signature, issuer, audience and expiry and returns the principal.
func (a *Auth) ValidateToken(tokenStr string) (*Principal, error) {
	if tokenStr == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := a.parser.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return a.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return principalFromClaims(claims), nil
}

// ExtractBearer reads the token from an Authorization header value.
func ExtractBearer(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}
	return strings.TrimSpace(parts[1]), nil
}

// TokenRequest describes the principal a minted token speaks for.
type TokenRequest struct {
	Subject string
	Name    string
	Tenant  string
	Roles   []string
	// TTL overrides Settings.TokenTTL when positive.
	TTL time.Duration
}

// GenerateToken mints an HS256 token for req with the configured issuer and audience.
func (a *Auth) GenerateToken(req TokenRequest) (string, error) {
	if req.Subject == "" {
		return "", errors.New("token subject is required")
	}
	ttl := req.TTL
	if ttl <= 0 {
		ttl = a.settings.TokenTTL()
	}

	now := time.Now()
	claims := Claims{
		Name:   req.Name,
		Tenant: req.Tenant,
		Roles:  req.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   req.Subject,
			Issuer:    a.settings.Issuer,
			Audience:  jwt.ClaimStrings{a.settings.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.key)
}
