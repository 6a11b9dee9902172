package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
	"github.com/yungbote/assetvault-backend/internal/repos"
	"github.com/yungbote/assetvault-backend/internal/requestdata"
	"github.com/yungbote/assetvault-backend/internal/types"
)

type AuthService interface {
	RegisterUser(ctx context.Context, user *types.User) error
	LoginUser(ctx context.Context, email, password string) (string, error)
	// SetContextFromToken validates the token and installs the acting user
	// into the request context. Session state lives in that context and
	// nowhere else.
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, user *types.User) error {
	if user == nil {
		return fmt.Errorf("no user given")
	}
	user.Email = strings.TrimSpace(strings.ToLower(user.Email))
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.Email == "" {
		return fmt.Errorf("an email is required to register")
	}
	if user.Password == "" {
		return fmt.Errorf("a password is required to register")
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, user.Email)
	if err != nil {
		return fmt.Errorf("failed to check user email: %w", err)
	}
	if exists {
		return fmt.Errorf("email is already in use")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	user.ID = uuid.New()
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return "", fmt.Errorf("email is required to login")
	}
	if password == "" {
		return "", fmt.Errorf("password is required to login")
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", fmt.Errorf("error retrieving user by email: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("invalid email or password")
	}
	return as.generateAccessToken(user)
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"name":  user.DisplayName(),
		"iat":   now.Unix(),
		"exp":   now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, fmt.Errorf("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, fmt.Errorf("invalid token subject")
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
		Email:       email,
		DisplayName: name,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
