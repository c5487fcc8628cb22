package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"resto-pos/dtos"
	"resto-pos/models"
	"resto-pos/utils"
)

type AuthService interface {
	Login(ctx context.Context, input dtos.LoginInput) (*dtos.AuthResponse, error)
	CreateUser(ctx context.Context, input dtos.CreateUserInput, actor *uint) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
}

type authService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) AuthService {
	return &authService{db: db}
}

func (s *authService) Login(ctx context.Context, input dtos.LoginInput) (*dtos.AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", input.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	if err := recordAudit(s.db.WithContext(ctx), uintPtr(user.ID), "auth.login", "user", uintPtr(user.ID), nil); err != nil {
		return nil, err
	}

	return &dtos.AuthResponse{
		Message: "Login successful",
		Token:   token,
		Role:    user.Role,
	}, nil
}

func (s *authService) CreateUser(ctx context.Context, input dtos.CreateUserInput, actor *uint) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: input.Username, Password: string(hash), Role: input.Role, Active: true}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("username = ?", input.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrConflict
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return recordAudit(tx, actor, "user.create", "user", uintPtr(user.ID), map[string]string{"username": user.Username, "role": user.Role})
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("username").Find(&users).Error
	return users, err
}
