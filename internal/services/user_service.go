package services

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jobdeck/jobboard-api/internal/apperrors"
	"github.com/jobdeck/jobboard-api/internal/dtos"
	"github.com/jobdeck/jobboard-api/internal/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// List returns all accounts, optionally filtered by role. Admin only at the
// route level.
func (s *UserService) List(ctx context.Context, role string) ([]models.User, error) {
	tx := s.DB.WithContext(ctx).Order("created_at DESC")
	if role != "" {
		parsed, err := models.ParseRole(role)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		tx = tx.Where("role = ?", parsed)
	}
	var users []models.User
	if err := tx.Find(&users).Error; err != nil {
		logrus.WithError(err).Error("listing users")
		return nil, apperrors.Internal(err)
	}
	return users, nil
}

// Get fetches one account: the user themselves or an admin.
func (s *UserService) Get(ctx context.Context, id string, identity *models.User) (*models.User, error) {
	if identity.Role != models.RoleAdmin && identity.ID != id {
		return nil, apperrors.Forbidden("not allowed to view this user")
	}
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		logrus.WithError(err).Error("fetching user")
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// Update patches an account. Admins may change role and status; the user
// themselves may only edit profile fields — a self patch carrying role or
// status is a validation error, not a silent drop.
func (s *UserService) Update(ctx context.Context, id string, identity *models.User, req *dtos.UserUpdateRequest) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		logrus.WithError(err).Error("fetching user")
		return nil, apperrors.Internal(err)
	}

	isAdmin := identity.Role == models.RoleAdmin
	if !isAdmin && identity.ID != id {
		return nil, apperrors.Forbidden("not allowed to update this user")
	}
	if !isAdmin && (req.Role != nil || req.Status != nil) {
		return nil, apperrors.Validation("role and status can only be set by an admin")
	}

	if req.Username != nil {
		if *req.Username == "" {
			return nil, apperrors.Validation("username cannot be empty")
		}
		user.Username = *req.Username
	}
	if req.Role != nil {
		parsed, err := models.ParseRole(*req.Role)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		user.Role = parsed
	}
	if req.Status != nil {
		parsed, err := models.ParseUserStatus(*req.Status)
		if err != nil {
			return nil, apperrors.Validation(err.Error())
		}
		user.Status = parsed
	}
	if req.ApplicantProfile != nil {
		user.ApplicantProfile = req.ApplicantProfile
	}
	if req.CompanyProfile != nil {
		user.CompanyProfile = req.CompanyProfile
	}

	if err := s.DB.WithContext(ctx).Save(&user).Error; err != nil {
		logrus.WithError(err).Error("updating user")
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

// Delete removes an account. Admin only, and an admin can never delete
// their own account — a fixed rule so the system cannot be orphaned.
func (s *UserService) Delete(ctx context.Context, id string, identity *models.User) error {
	if identity.Role != models.RoleAdmin {
		return apperrors.Forbidden("only admins delete users")
	}
	if identity.ID == id {
		return apperrors.Forbidden("admins cannot delete their own account")
	}

	var user models.User
	err := s.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.NotFound("user not found")
		}
		logrus.WithError(err).Error("fetching user for delete")
		return apperrors.Internal(err)
	}

	if err := s.DB.WithContext(ctx).Delete(&user).Error; err != nil {
		logrus.WithError(err).Error("deleting user")
		return apperrors.Internal(err)
	}
	return nil
}
