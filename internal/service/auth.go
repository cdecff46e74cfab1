package service

import (
	"context"
	"strings"

	"rentall-backend/internal/domain"
	"rentall-backend/internal/repository"
	"rentall-backend/internal/security"

	"github.com/google/uuid"
)

type authService struct {
	userRepo repository.UserRepository
	tokens   security.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens security.TokenManager) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

func (s *authService) Register(ctx context.Context, email, name, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", domain.ValidationError("a valid email is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, "", domain.ValidationError("name is required")
	}
	if len(password) < 6 {
		return nil, "", domain.ValidationError("password must be at least 6 characters")
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, "", domain.ConflictError("email already registered")
	} else if domain.KindOf(err) != domain.ErrKindNotFound {
		return nil, "", err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "could not hash password")
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "could not issue token")
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if domain.KindOf(err) == domain.ErrKindNotFound {
			return nil, "", domain.UnauthorizedError("invalid email or password")
		}
		return nil, "", err
	}
	if !security.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.UnauthorizedError("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, "", domain.WrapInternal(err, "could not issue token")
	}
	return user, token, nil
}

func (s *authService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *authService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.ValidationError("name cannot be empty")
	}
	if err := s.userRepo.UpdateProfile(ctx, userID, update); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}
