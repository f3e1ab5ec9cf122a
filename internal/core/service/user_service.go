package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/accounts-api/internal/core/domain"
	"github.com/accounthub/accounts-api/internal/core/ports"
)

const defaultTokenTTL = 8 * time.Hour

// TokenConfig carries the signing settings for issued JWTs. Issuer and
// audience are stamped into the claims but not validated on issuance.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

// UserService implements account persistence plus registration and login.
type UserService struct {
	*EntityService[domain.User, *domain.User]
	users  ports.UserRepository
	token  TokenConfig
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, token TokenConfig, logger zerolog.Logger) *UserService {
	if token.TTL <= 0 {
		token.TTL = defaultTokenTTL
	}
	return &UserService{
		EntityService: NewEntityService[domain.User, *domain.User](repo, logger),
		users:         repo,
		token:         token,
		logger:        logger,
	}
}

func (s *UserService) Add(ctx context.Context, entity *domain.User) error {
	return emailConflict(s.EntityService.Add(ctx, entity))
}

func (s *UserService) Update(ctx context.Context, entity *domain.User) error {
	return emailConflict(s.EntityService.Update(ctx, entity))
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("get user by email %s: %w", email, err)
	}
	return user, nil
}

// Register forces the Client role and persists through the repository
// directly, skipping the generic existence machinery.
func (s *UserService) Register(ctx context.Context, entity *domain.User) error {
	if entity == nil {
		return domain.ErrNilEntity
	}
	entity.Role = domain.RoleClient

	if err := s.users.Add(ctx, entity); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.ErrEmailTaken
		}
		return fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().Int64("user_id", entity.ID).Str("email", entity.Email).Msg("user registered")
	return nil
}

// Authenticate verifies the credentials and returns a signed token. An
// unknown email and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("authenticate user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Str("role", user.Role).Msg("user authenticated")
	return token, nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   strconv.FormatInt(user.ID, 10),
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
		"iss":   s.token.Issuer,
		"aud":   s.token.Audience,
		"iat":   now.Unix(),
		"exp":   now.Add(s.token.TTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.token.Secret))
}

// emailConflict translates the store's unique violation into the account
// domain's error: email is the only unique column on users.
func emailConflict(err error) error {
	if errors.Is(err, domain.ErrConflict) {
		return domain.ErrEmailTaken
	}
	return err
}
