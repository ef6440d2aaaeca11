package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/2beens/fitcompare/internal/telemetry/tracing"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken     = errors.New("missing bearer token")
	ErrInvalidToken     = errors.New("invalid bearer token")
	ErrEmailNotVerified = errors.New("email not verified")
)

// Identity is what the identity provider asserts about the caller.
type Identity struct {
	Subject       string
	Email         string
	EmailVerified bool
}

type VerifierConfig struct {
	// Secret verifies HS256 tokens. Ignored when PublicKeyPEM is set.
	Secret string
	// PublicKeyPEM verifies RS256 tokens.
	PublicKeyPEM string
	Issuer       string
	Audience     string
}

// Verifier validates identity tokens issued by the external identity provider.
type Verifier struct {
	keyFunc jwt.Keyfunc
	options []jwt.ParserOption
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	options := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		options = append(options, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		options = append(options, jwt.WithAudience(cfg.Audience))
	}

	switch {
	case cfg.PublicKeyPEM != "":
		publicKey, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKeyPEM))
		if err != nil {
			return nil, fmt.Errorf("parse identity public key: %w", err)
		}
		options = append(options, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Name}))
		return &Verifier{
			keyFunc: func(*jwt.Token) (interface{}, error) {
				return publicKey, nil
			},
			options: options,
		}, nil
	case cfg.Secret != "":
		secret := []byte(cfg.Secret)
		options = append(options, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		return &Verifier{
			keyFunc: func(*jwt.Token) (interface{}, error) {
				return secret, nil
			},
			options: options,
		}, nil
	default:
		return nil, errors.New("identity verifier needs a secret or a public key")
	}
}

// Verify parses and validates the token. A token for an unverified email is
// valid, but reported with ErrEmailNotVerified next to the identity.
func (v *Verifier) Verify(ctx context.Context, token string) (_ *Identity, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "auth.verify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	parsed, err := jwt.Parse(token, v.keyFunc, v.options...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	identity := &Identity{}
	identity.Subject, _ = claims["sub"].(string)
	identity.Email, _ = claims["email"].(string)
	identity.EmailVerified, _ = claims["email_verified"].(bool)
	if identity.Subject == "" || identity.Email == "" {
		return nil, fmt.Errorf("%w: sub and email claims are required", ErrInvalidToken)
	}

	if !identity.EmailVerified {
		return identity, ErrEmailNotVerified
	}

	return identity, nil
}
