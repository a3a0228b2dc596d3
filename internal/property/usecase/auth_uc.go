package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
	"github.com/Rushibhatt10/HBEstate/internal/property/domain"
)

// RoleAdmin is the only role issued by the operator login.
const RoleAdmin = "admin"

// Claims are the JWT claims of an operator session.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// AuthUsecase gates the operator panel behind a single password.
type AuthUsecase struct {
	passwordHash []byte
	secret       []byte
	issuer       string
	ttl          time.Duration
	logger       *logger.Logger
	now          func() time.Time
}

// NewAuthUsecase creates an AuthUsecase. When passwordHash is empty the
// plaintext password is hashed once at startup.
func NewAuthUsecase(passwordHash, password, secret, issuer string, ttl time.Duration, log *logger.Logger) (*AuthUsecase, error) {
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		if password == "" {
			return nil, errors.New("an admin password or password hash is required")
		}
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash admin password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid admin password hash: %w", err)
	}
	if secret == "" {
		return nil, errors.New("a token secret is required")
	}
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &AuthUsecase{
		passwordHash: hash,
		secret:       []byte(secret),
		issuer:       issuer,
		ttl:          ttl,
		logger:       log.Named("AuthUsecase"),
		now:          time.Now,
	}, nil
}

// Login checks password and issues a signed token with its expiry.
func (uc *AuthUsecase) Login(ctx context.Context, password string) (string, time.Time, error) {
	_, span := tracer.Start(ctx, "AuthUsecase.Login")
	defer span.End()

	if err := bcrypt.CompareHashAndPassword(uc.passwordHash, []byte(password)); err != nil {
		uc.logger.Warn("Operator login rejected")
		return "", time.Time{}, domain.ErrInvalidCredentials
	}

	now := uc.now()
	expiresAt := now.Add(uc.ttl)
	claims := Claims{
		Role: RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   RoleAdmin,
			Issuer:    uc.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		uc.logger.Error("Failed to sign operator token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	uc.logger.Info("Operator logged in", zap.String("token_id", claims.ID))
	return token, expiresAt, nil
}

// Verify parses an operator token. Every failure maps to ErrUnauthorized.
func (uc *AuthUsecase) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return uc.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(uc.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Role != RoleAdmin {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
