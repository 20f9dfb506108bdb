package services

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/ramonskie/mediareaparr/internal/config"
	"github.com/ramonskie/mediareaparr/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles authentication operations
type AuthService struct {
	cfg *config.Config
}

// NewAuthService creates a new AuthService
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		cfg: cfg,
	}
}

// Login authenticates a user and returns a JWT token
func (s *AuthService) Login(username, password string) (string, error) {
	if username != s.cfg.Admin.Username {
		return "", ErrInvalidCredentials
	}

	if !verifyPassword(s.cfg.Admin.Password, password) {
		return "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(username)
	if err != nil {
		return "", err
	}

	return token, nil
}

// ValidateToken validates a JWT token
func (s *AuthService) ValidateToken(token string) (*utils.JWTClaims, error) {
	return utils.ValidateToken(token)
}

// verifyPassword compares the supplied password against the stored one. A
// stored value with a bcrypt prefix is treated as a hash; anything else is
// compared in constant time as plain text.
func verifyPassword(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
