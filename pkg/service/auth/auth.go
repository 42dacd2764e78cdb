// Package auth implements login and registration over the credential store.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amitrawal/railbank/pkg/config"
	"github.com/amitrawal/railbank/pkg/domain/user"
	"github.com/amitrawal/railbank/pkg/repository"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCredentials is the single, deliberately unspecific rejection for
// a failed login. Unknown usernames and wrong secrets are indistinguishable
// to the caller, so nothing leaks about which usernames exist.
var ErrInvalidCredentials = errors.New("login failed, check credentials")

// Service authenticates and registers users against the credential store.
type Service struct {
	creds  repository.CredentialRepository
	cmp    SecretComparer
	jwtCfg *config.Jwt
	logger *slog.Logger
}

// New builds the auth service. jwtCfg may be nil when no tokens are issued
// (the console surface).
func New(
	creds repository.CredentialRepository,
	cmp SecretComparer,
	jwtCfg *config.Jwt,
	logger *slog.Logger,
) *Service {
	return &Service{creds: creds, cmp: cmp, jwtCfg: jwtCfg, logger: logger}
}

// Authenticate returns the identity (the username) when the stored secret
// matches, and ErrInvalidCredentials otherwise.
func (s *Service) Authenticate(username, secret string) (string, error) {
	log := s.logger.With("context", "Authenticate")
	c, ok := s.creds.Get(username)
	if !ok || !s.cmp.Compare(secret, c.Secret) {
		log.Warn("login rejected", "username", username)
		return "", ErrInvalidCredentials
	}
	log.Info("login successful", "username", username)
	return c.Username, nil
}

// Register creates a credential. Empty fields and duplicate usernames come
// back as typed validation/conflict errors; existing entries are never
// resealed.
func (s *Service) Register(username, secret string) error {
	log := s.logger.With("context", "Register")
	c, err := user.New(username, secret)
	if err != nil {
		return err
	}
	sealed, err := s.cmp.Seal(c.Secret)
	if err != nil {
		return fmt.Errorf("sealing secret: %w", err)
	}
	c.Secret = sealed
	if err := s.creds.Create(c); err != nil {
		log.Warn("registration rejected", "username", c.Username, "error", err)
		return err
	}
	log.Info("user registered", "username", c.Username)
	return nil
}

// GenerateToken issues a signed JWT for an authenticated identity. Used by
// the HTTP surface; the console keeps its session in memory instead.
func (s *Service) GenerateToken(identity string) (string, error) {
	if s.jwtCfg == nil {
		return "", errors.New("token issuing not configured")
	}
	claims := jwt.MapClaims{
		"sub": identity,
		"exp": time.Now().Add(s.jwtCfg.Expiry).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtCfg.Secret))
}

// Identity extracts the authenticated username from a parsed token.
func Identity(token *jwt.Token) (string, error) {
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("unexpected token claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("token missing subject")
	}
	return sub, nil
}
