package service

import (
	"context"
	"errors"
	"fmt"

	"fittrack/internal/common"
	"fittrack/internal/common/security"
	"fittrack/internal/domain/model"
	"fittrack/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterRequest struct {
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	Password   string   `json:"password"`
	Name       string   `json:"name"`
	Age        *int     `json:"age"`
	Gender     string   `json:"gender"`
	HeightCm   *float64 `json:"height"`
	WeightKg   *float64 `json:"weight"`
	Experience string   `json:"experience"`
	Frequency  string   `json:"frequency"`
	Duration   string   `json:"duration"`
	Goal       string   `json:"goal"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries a partial profile update: nil fields are
// left unchanged, non-nil fields overwrite the stored value.
type UpdateProfileRequest struct {
	Name       *string  `json:"name"`
	Age        *int     `json:"age"`
	Gender     *string  `json:"gender"`
	HeightCm   *float64 `json:"height"`
	WeightKg   *float64 `json:"weight"`
	Experience *string  `json:"experience"`
	Frequency  *string  `json:"frequency"`
	Duration   *string  `json:"duration"`
	Goal       *string  `json:"goal"`
}

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrBadRequest)
	}

	// Pre-checks give precise messages; the unique indexes on username and
	// email stay authoritative for the check-then-insert race.
	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, fmt.Errorf("username already exists: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already exists: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Name:           req.Name,
		Age:            req.Age,
		Gender:         req.Gender,
		HeightCm:       req.HeightCm,
		WeightKg:       req.WeightKg,
		Experience:     req.Experience,
		Frequency:      req.Frequency,
		Duration:       req.Duration,
		Goal:           req.Goal,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrBadRequest)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// Same error as a wrong password; account existence stays hidden.
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Age != nil {
		user.Age = req.Age
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.HeightCm != nil {
		user.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		user.WeightKg = req.WeightKg
	}
	if req.Experience != nil {
		user.Experience = *req.Experience
	}
	if req.Frequency != nil {
		user.Frequency = *req.Frequency
	}
	if req.Duration != nil {
		user.Duration = *req.Duration
	}
	if req.Goal != nil {
		user.Goal = *req.Goal
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}
