package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"qkart/apierror"
	"qkart/models"
)

const (
	MsgEmailTaken      = "Email already taken"
	MsgIncorrectLogin  = "Incorrect email or password"
	MsgInvalidToken    = "Invalid or expired token"
	MsgTokenRevoked    = "Token has been revoked"
	MsgPasswordTooWeak = "Password must be at least 8 characters and contain a letter and a number"

	bcryptCost = 10
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	Secret             []byte
	Expiration         time.Duration
	DefaultAddress     string
	DefaultWalletMoney float64
}

type AuthService struct {
	users  UserStore
	tokens TokenStore
	cfg    AuthConfig
	now    func() time.Time
}

func NewAuthService(users UserStore, tokens TokenStore, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens, cfg: cfg, now: time.Now}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validPassword(password) {
		return nil, apierror.BadRequest(MsgPasswordTooWeak)
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apierror.Internal("Failed to register", err)
	}
	if existing != nil {
		return nil, apierror.Conflict(MsgEmailTaken)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apierror.Internal("Failed to register", err)
	}

	user := &models.User{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Email:       email,
		Password:    string(hashed),
		Role:        models.RoleCustomer,
		WalletMoney: s.cfg.DefaultWalletMoney,
		Address:     s.cfg.DefaultAddress,
		CreatedAt:   s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicate) {
			return nil, apierror.Conflict(MsgEmailTaken)
		}
		return nil, apierror.Internal("Failed to register", err)
	}
	return user, nil
}

// Login checks the credentials and returns the user with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apierror.Internal("Failed to login", err)
	}
	if user == nil {
		return nil, "", apierror.Unauthorized(MsgIncorrectLogin)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apierror.Unauthorized(MsgIncorrectLogin)
	}

	token, err := s.issue(user)
	if err != nil {
		return nil, "", apierror.Internal("Failed to login", err)
	}
	return user, token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parse(token)
	if err != nil {
		return err
	}
	if err := s.tokens.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return apierror.Internal("Failed to revoke token", err)
	}
	return nil
}

// Verify validates signature and expiry and rejects revoked tokens.
func (s *AuthService) Verify(ctx context.Context, token string) (*Claims, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, err
	}
	revoked, err := s.tokens.IsRevoked(ctx, token)
	if err != nil {
		return nil, apierror.Internal("Failed to verify token", err)
	}
	if revoked {
		return nil, apierror.Unauthorized(MsgTokenRevoked)
	}
	return claims, nil
}

func (s *AuthService) issue(user *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.Expiration)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
}

func (s *AuthService) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.cfg.Secret, nil
	})
	if err != nil || !parsed.Valid || claims.ExpiresAt == nil {
		return nil, apierror.Unauthorized(MsgInvalidToken)
	}
	return claims, nil
}

func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	return strings.ContainsAny(password, "0123456789") &&
		strings.ContainsAny(strings.ToLower(password), "abcdefghijklmnopqrstuvwxyz")
}
