package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"formforge-api/internal/model"
	"formforge-api/internal/repository"
)

const minPasswordLength = 8

// Claims are the JWT claims issued at login.
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService handles account creation and credential checks. Everything
// else only needs the userID it resolves from a token.
type AuthService interface {
	Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error)
	Login(ctx context.Context, req model.LoginRequest) (model.User, string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthService constructs an authService.
func NewAuthService(users repository.UserRepository, secret string, ttl time.Duration) AuthService {
	return &authService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *authService) Signup(ctx context.Context, req model.SignupRequest) (model.User, string, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return model.User{}, "", &ValidationError{Message: "a valid email is required"}
	}
	if len(req.Password) < minPasswordLength {
		return model.User{}, "", &ValidationError{Message: "password must be at least 8 characters"}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.Create(ctx, req.Email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.User{}, "", &ValidationError{Message: "email already registered"}
		}
		return model.User{}, "", err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, req model.LoginRequest) (model.User, string, error) {
	if req.Email == "" || req.Password == "" {
		return model.User{}, "", &ValidationError{Message: "email and password are required"}
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.User{}, "", &UnauthorizedError{Message: "invalid credentials"}
		}
		return model.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(req.Password)); err != nil {
		return model.User{}, "", &UnauthorizedError{Message: "invalid credentials"}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return model.User{}, "", err
	}
	return user, token, nil
}

// ValidateToken parses and verifies a JWT and returns its claims.
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, &UnauthorizedError{Message: "invalid or expired token"}
	}
	if !token.Valid {
		return nil, &UnauthorizedError{Message: "invalid or expired token"}
	}
	return claims, nil
}

func (s *authService) generateToken(user model.User) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "formforge-api",
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
