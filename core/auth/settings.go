package auth

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
)

// MinSecretKeyBytes is the shortest accepted HMAC key. HS256 needs a key at
// least as long as its 256-bit digest.
const MinSecretKeyBytes = 32

// ErrInvalidSettings marks every settings validation failure.
var ErrInvalidSettings = errors.New("invalid authentication settings")

// Settings holds the bearer-token validation parameters.
type Settings struct {
	// Issuer is the required "iss" claim.
	Issuer string `mapstructure:"issuer" default:"cnet"`
	// Audience is the required "aud" claim.
	Audience string `mapstructure:"audience" default:"cnet-api"`
	// SecretKey is the symmetric HMAC signing key.
	SecretKey string `mapstructure:"secret_key" default:""`
	// TokenTTLMinutes is the lifetime of tokens minted by GenerateToken.
	TokenTTLMinutes int `mapstructure:"token_ttl_minutes" default:"120"`
	// ClockSkewSeconds is the leeway applied to expiry and not-before checks.
	ClockSkewSeconds int `mapstructure:"clock_skew_seconds" default:"0"`
}

// Validate reports every problem with the settings at once.
func (s Settings) Validate() error {
	var err error
	if s.Issuer == "" {
		err = multierr.Append(err, fmt.Errorf("%w: issuer is required", ErrInvalidSettings))
	}
	if s.Audience == "" {
		err = multierr.Append(err, fmt.Errorf("%w: audience is required", ErrInvalidSettings))
	}
	switch {
	case s.SecretKey == "":
		err = multierr.Append(err, fmt.Errorf("%w: secret key is required", ErrInvalidSettings))
	case len(s.SecretKey) < MinSecretKeyBytes:
		err = multierr.Append(err, fmt.Errorf("%w: secret key must be at least %d bytes, got %d",
			ErrInvalidSettings, MinSecretKeyBytes, len(s.SecretKey)))
	}
	if s.ClockSkewSeconds < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: clock skew must not be negative", ErrInvalidSettings))
	}
	return err
}

// TokenTTL returns the lifetime of minted tokens, defaulting to two hours.
func (s Settings) TokenTTL() time.Duration {
	if s.TokenTTLMinutes <= 0 {
		return 2 * time.Hour
	}
	return time.Duration(s.TokenTTLMinutes) * time.Minute
}
