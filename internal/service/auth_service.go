package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/KushalZanzari/Echo-AI/internal/config"
	"github.com/KushalZanzari/Echo-AI/internal/domain"
	"github.com/KushalZanzari/Echo-AI/internal/repository"
)

// AuthService handles account sign-up, sign-in and token verification
type AuthService struct {
	users  *repository.UserRepository
	secret []byte
	ttl    time.Duration
	cost   int
	log    *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(users *repository.UserRepository, cfg config.AuthConfig, log *zap.Logger) *AuthService {
	cost := cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL(),
		cost:   cost,
		log:    log,
	}
}

// SignUp creates a new account. Duplicate emails and missing fields are
// rejected with sentinel errors the handler maps to 400.
func (s *AuthService) SignUp(ctx context.Context, req *domain.SignUpRequest) (*domain.User, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, domain.ErrMissingFields
	}

	existing, _, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{Name: req.Name, Email: req.Email}
	if err := s.users.Create(user, string(hash)); err != nil {
		return nil, err
	}

	s.log.Info("user created", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// SignIn verifies credentials and returns a signed token plus the user.
// A wrong email and a wrong password produce the same error so the
// response never reveals which one was off.
func (s *AuthService) SignIn(ctx context.Context, req *domain.SignInRequest) (string, *domain.User, error) {
	if req.Email == "" || req.Password == "" {
		return "", nil, domain.ErrMissingFields
	}

	user, hash, err := s.users.GetByEmail(req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(s.ttl).Unix(),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, user, nil
}

// VerifyToken parses and validates a bearer token and returns its claims.
func (s *AuthService) VerifyToken(tokenString string) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	out := &domain.TokenClaims{}
	if v, ok := claims["id"].(string); ok {
		out.UserID = v
	}
	if v, ok := claims["name"].(string); ok {
		out.Name = v
	}
	if v, ok := claims["email"].(string); ok {
		out.Email = v
	}
	return out, nil
}
