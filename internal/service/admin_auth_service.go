package service

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/GTDGit/gtd_store/internal/config"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// AdminAuthService authenticates the single configured store administrator.
type AdminAuthService struct {
	email        string
	passwordHash []byte
	secret       string
	tokenTTL     time.Duration
}

func NewAdminAuthService(admin config.AdminConfig, jwtSecret string) *AdminAuthService {
	return &AdminAuthService{
		email:        strings.ToLower(admin.Email),
		passwordHash: []byte(admin.PasswordHash),
		secret:       jwtSecret,
		tokenTTL:     admin.TokenTTL,
	}
}

func (s *AdminAuthService) Login(email, password string) (string, error) {
	log.Debug().Str("email", email).Msg("Login attempt")

	if s.email == "" || len(s.passwordHash) == 0 {
		log.Warn().Msg("Admin login is not configured")
		return "", utils.ErrInvalidCredentials
	}

	emailOK := subtle.ConstantTimeCompare([]byte(strings.ToLower(email)), []byte(s.email)) == 1
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil || !emailOK {
		log.Warn().Str("email", email).Msg("Password verification failed")
		return "", utils.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(s.secret, s.email, s.tokenTTL)
	if err != nil {
		return "", err
	}

	log.Info().Str("email", email).Msg("Login successful")
	return token, nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}
