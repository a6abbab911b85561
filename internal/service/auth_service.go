package service

import (
	"errors"
	"regexp"
	"time"
	"unicode"

	"github.com/forumhq/backend/internal/apperr"
	"github.com/forumhq/backend/internal/models"
	"github.com/forumhq/backend/internal/repository"
	"github.com/forumhq/backend/internal/utils"
	"github.com/forumhq/backend/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// PasswordPolicy is the configurable complexity policy applied at
// registration. MinLength is always enforced; RequireMixed additionally
// demands at least one letter and one digit.
type PasswordPolicy struct {
	MinLength    int
	RequireMixed bool
}

type AuthService struct {
	userRepo      *repository.UserRepository
	jwtSecret     string
	jwtExpiration time.Duration
	policy        PasswordPolicy
}

func NewAuthService(userRepo *repository.UserRepository, jwtSecret string, jwtExpiration time.Duration, policy PasswordPolicy) *AuthService {
	return &AuthService{
		userRepo:      userRepo,
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		policy:        policy,
	}
}

func (s *AuthService) Register(username, email, password string) (*models.User, string, error) {
	start := time.Now()

	if err := s.validateRegisterInput(username, email, password); err != nil {
		logger.Log.Warn("Registration validation failed",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", err
	}

	// Pre-check uniqueness for friendly messages. The insert below still maps
	// duplicate-key errors, so two concurrent registrations cannot both pass.
	existing, err := s.userRepo.GetUserByEmail(email)
	if err != nil {
		logger.Log.Error("Failed to check email existence",
			zap.String("email", email),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("username or email already exists")
	}

	existing, err = s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to check username existence",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}
	if existing != nil {
		return nil, "", apperr.Conflict("username or email already exists")
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		logger.Log.Error("Failed to hash password", zap.Error(err))
		return nil, "", apperr.Storage(err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         models.RoleUser,
	}

	if err := s.userRepo.CreateUser(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Log.Warn("Registration lost uniqueness race",
				zap.String("username", username),
			)
			return nil, "", apperr.Conflict("username or email already exists")
		}
		logger.Log.Error("Failed to create user",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}

	logger.Log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("username", username),
		zap.Duration("duration", time.Since(start)),
	)

	return user, token, nil
}

func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(username)
	if err != nil {
		logger.Log.Error("Failed to get user by username",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}
	if user == nil {
		// Same message as a password mismatch: never reveal which field was wrong.
		logger.Log.Warn("Login failed: user not found",
			zap.String("username", username),
		)
		return nil, "", apperr.Authentication("invalid credentials")
	}

	valid, err := utils.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		logger.Log.Error("Failed to verify password",
			zap.String("username", username),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}
	if !valid {
		logger.Log.Warn("Login failed: invalid password",
			zap.String("username", username),
			zap.String("user_id", user.ID.String()),
		)
		return nil, "", apperr.Authentication("invalid credentials")
	}

	token, err := utils.GenerateToken(user, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		logger.Log.Error("Failed to generate token",
			zap.String("user_id", user.ID.String()),
			zap.Error(err),
		)
		return nil, "", apperr.Storage(err)
	}

	logger.Log.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
	)

	return user, token, nil
}

// ListUsers returns the public view of every user. The admin gate lives in
// the route middleware.
func (s *AuthService) ListUsers() ([]models.PublicView, error) {
	users, err := s.userRepo.GetAllUsers()
	if err != nil {
		logger.Log.Error("Failed to list users", zap.Error(err))
		return nil, apperr.Storage(err)
	}

	views := make([]models.PublicView, 0, len(users))
	for _, u := range users {
		views = append(views, u.Public())
	}
	return views, nil
}

// DeleteUser removes a user and everything they own. Admin-only operation;
// self-deletion is rejected so an admin cannot lock the forum out of
// moderation by accident.
func (s *AuthService) DeleteUser(targetID, adminID uuid.UUID) error {
	if targetID == adminID {
		return apperr.Validation("admins cannot delete their own account")
	}

	target, err := s.userRepo.GetUserByID(targetID)
	if err != nil {
		logger.Log.Error("Failed to load user for deletion",
			zap.String("user_id", targetID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}
	if target == nil {
		return apperr.NotFound("user not found")
	}

	if err := s.userRepo.DeleteUserCascade(targetID); err != nil {
		logger.Log.Error("Failed to delete user",
			zap.String("user_id", targetID.String()),
			zap.Error(err),
		)
		return apperr.Storage(err)
	}

	logger.Log.Info("User deleted",
		zap.String("user_id", targetID.String()),
		zap.String("admin_id", adminID.String()),
	)

	return nil
}

func (s *AuthService) validateRegisterInput(username, email, password string) error {
	if len(username) < 3 {
		return apperr.Validation("username must be at least 3 characters")
	}
	if len(username) > 50 {
		return apperr.Validation("username must be at most 50 characters")
	}

	if !emailRegex.MatchString(email) {
		return apperr.Validation("invalid email format")
	}
	if len(email) > 100 {
		return apperr.Validation("email too long")
	}

	return s.validatePassword(password)
}

func (s *AuthService) validatePassword(password string) error {
	minLen := s.policy.MinLength
	if minLen <= 0 {
		minLen = 8
	}
	if len(password) < minLen {
		return apperr.Validation("password too short")
	}
	if len(password) > 128 {
		return apperr.Validation("password too long")
	}

	if s.policy.RequireMixed {
		var hasLetter, hasDigit bool
		for _, r := range password {
			switch {
			case unicode.IsLetter(r):
				hasLetter = true
			case unicode.IsDigit(r):
				hasDigit = true
			}
		}
		if !hasLetter || !hasDigit {
			return apperr.Validation("password must contain letters and digits")
		}
	}

	return nil
}
