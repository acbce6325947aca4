package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/auth"
	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/models"
)

type AuthService struct {
	DB     *gorm.DB
	Tokens *auth.TokenManager
}

func NewAuthService(db *gorm.DB, tokens *auth.TokenManager) *AuthService {
	return &AuthService{DB: db, Tokens: tokens}
}

// Register creates an account and issues its first token. The role defaults
// to applicant; admin self-registration is not a thing.
func (s *AuthService) Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	role := models.RoleApplicant
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil || parsed == models.RoleAdmin {
			return nil, apperrors.Validation("role must be applicant or company")
		}
		role = parsed
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		Status:       models.UserStatusActive,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("email already registered")
		}
		logrus.WithError(err).Error("creating user")
		return nil, apperrors.Internal(err)
	}

	token, err := s.Tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &dtos.AuthResponse{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. The error message is the
// same whether the email is unknown or the password is wrong, so the
// endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	invalid := apperrors.Unauthenticated("invalid email or password")

	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		logrus.WithError(err).Error("looking up user for login")
		return nil, apperrors.Internal(err)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, invalid
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.Unauthenticated("account is not active")
	}

	token, err := s.Tokens.Issue(&user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return &dtos.AuthResponse{Token: token, User: &user}, nil
}

// ResolveIdentity turns verified claims into the current user record.
// Re-reading the row each request means role or status changes since the
// token was issued take effect immediately; a deleted or deactivated user
// fails authentication rather than riding out the token's lifetime.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", claims.UserID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Unauthenticated("account no longer exists")
		}
		logrus.WithError(err).Error("resolving token identity")
		return nil, apperrors.Internal(err)
	}
	if user.Status != models.UserStatusActive {
		return nil, apperrors.Unauthenticated("account is not active")
	}
	return &user, nil
}

// UpdateProfile applies a self-service profile patch to the authenticated
// user.
func (s *AuthService) UpdateProfile(ctx context.Context, identity *models.User, req *dtos.ProfileUpdateRequest) (*models.User, error) {
	if req.Username != nil {
		if *req.Username == "" {
			return nil, apperrors.Validation("username cannot be empty")
		}
		identity.Username = *req.Username
	}
	if req.ApplicantProfile != nil {
		identity.ApplicantProfile = req.ApplicantProfile
	}
	if req.CompanyProfile != nil {
		identity.CompanyProfile = req.CompanyProfile
	}
	if err := s.DB.WithContext(ctx).Save(identity).Error; err != nil {
		logrus.WithError(err).Error("updating profile")
		return nil, apperrors.Internal(err)
	}
	return identity, nil
}
