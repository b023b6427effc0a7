package services

import (
	"crypto/subtle"
	"errors"
	"time"

	"memories-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenSubject = "writer"

type AuthConfig struct {
	// Password is the shared secret, compared byte for byte.
	Password string
	// PasswordHash, when set, is a bcrypt hash checked instead of Password.
	PasswordHash string
	// IssueTokens makes Login return a signed token for the write gate.
	IssueTokens bool
	JWTSecret   string
	TokenTTL    time.Duration
}

// AuthService is the shared-secret gate. It keeps no session state.
type AuthService struct {
	cfg AuthConfig
	now func() time.Time
}

func NewAuthService(cfg AuthConfig) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 72 * time.Hour
	}
	return &AuthService{cfg: cfg, now: time.Now}
}

// Configured reports whether any secret is set. With no secret every login fails.
func (s *AuthService) Configured() bool {
	return s.cfg.Password != "" || s.cfg.PasswordHash != ""
}

// Login checks password against the shared secret.
func (s *AuthService) Login(password string) (*models.LoginResponse, error) {
	if !s.checkPassword(password) {
		return nil, ErrUnauthorized
	}

	res := &models.LoginResponse{Success: true}
	if s.cfg.IssueTokens {
		token, err := s.GenerateToken()
		if err != nil {
			return nil, err
		}
		res.Token = token
	}
	return res, nil
}

func (s *AuthService) checkPassword(password string) bool {
	if s.cfg.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasswordHash), []byte(password)) == nil
	}
	if s.cfg.Password == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(s.cfg.Password)) == 1
}

func (s *AuthService) GenerateToken() (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) ValidateToken(tokenString string) error {
	if s.cfg.JWTSecret == "" {
		return ErrUnauthorized
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithSubject(tokenSubject))
	if err != nil || !token.Valid {
		return ErrUnauthorized
	}
	return nil
}
