package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hzerradi/avancement-api/config"
	"github.com/hzerradi/avancement-api/internal/dto"
	"github.com/hzerradi/avancement-api/internal/model"
	"github.com/hzerradi/avancement-api/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// landingPaths maps each role to its post-login console.
var landingPaths = map[string]string{
	model.RoleCandidat:   "/candidat",
	model.RoleAdmin:      "/admin",
	model.RoleCommission: "/commission",
	model.RolePresident:  "/president",
	model.RoleSysteme:    "/systeme",
}

// LandingPath returns the console path for a role, defaulting to the
// candidate space.
func LandingPath(role string) string {
	if p, ok := landingPaths[role]; ok {
		return p
	}
	return landingPaths[model.RoleCandidat]
}

type Claims struct {
	UserID uint   `json:"uid"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(req dto.LoginRequest) (string, *dto.UserDTO, error)
	ParseToken(token string) (*Claims, error)
	Me(userID uint) (*dto.UserDTO, error)
	TokenTTL() time.Duration
}

type authService struct {
	userRepo repository.UserRepository
	secret   []byte
	ttl      time.Duration
}

func NewAuthService(cfg *config.Config, userRepo repository.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
		secret:   []byte(cfg.Auth.JWTSecret),
		ttl:      cfg.Auth.TokenTTL,
	}
}

// Login verifies the credentials and issues a signed token. The same
// ErrInvalidLogin covers unknown email and wrong password.
func (s *authService) Login(req dto.LoginRequest) (string, *dto.UserDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidLogin
		}
		return "", nil, fmt.Errorf("error fetching user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", nil, ErrInvalidLogin
	}

	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		log.Error().Err(err).Msg("Failed to sign token")
		return "", nil, fmt.Errorf("error signing token: %w", err)
	}

	return token, userToDTO(user), nil
}

func (s *authService) ParseToken(token string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidLogin
	}
	return &claims, nil
}

func (s *authService) Me(userID uint) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	return userToDTO(user), nil
}

func (s *authService) TokenTTL() time.Duration {
	return s.ttl
}

// HashPassword wraps bcrypt with the default cost for user creation paths.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func userToDTO(u *model.User) *dto.UserDTO {
	return &dto.UserDTO{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
