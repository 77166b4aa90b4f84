// Package service implements the user repository operations on top of the
// database layer.
package service

import (
	"errors"
	"strings"

	"usergate/database"
	"usergate/database/model"
	"usergate/util/common"
	"usergate/util/crypto"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService() *UserService {
	return &UserService{DB: database.GetDB()}
}

// AddUser hashes the password and inserts a new user. A username that is
// already taken yields ErrUserExists.
func (s *UserService) AddUser(username string, password string, role string) (*model.User, error) {
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	err = s.DB.Create(user).Error
	if err != nil {
		// The unique index on username is the authority on duplicates, so
		// concurrent creates of the same name cannot slip through.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUserExists
		}
		return nil, common.NewErrorf("create user %q: %v", username, err)
	}
	return user, nil
}

// AllUsers returns a snapshot of all users in insertion order.
func (s *UserService) AllUsers() ([]model.User, error) {
	var users []model.User
	if err := s.DB.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser looks up a user by exact username.
func (s *UserService) GetUser(username string) (*model.User, error) {
	user := &model.User{}
	err := s.DB.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserRole persists a new role onto the stored record. Only the role
// field is touched. If the user vanished between the caller's lookup and this
// call the update is ErrUserNotFound, never a resurrection.
func (s *UserService) UpdateUserRole(username string, role string) (*model.User, error) {
	result := s.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("role", role)
	if result.Error != nil {
		return nil, common.NewError("update user role:", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrUserNotFound
	}
	return s.GetUser(username)
}

// DeleteUser removes the record if present. Deleting an absent username is a
// no-op, so the operation is idempotent.
func (s *UserService) DeleteUser(username string) error {
	return s.DB.Where("username = ?", username).Delete(&model.User{}).Error
}

// CountUsers reports the number of stored users.
func (s *UserService) CountUsers() (int64, error) {
	var count int64
	err := s.DB.Model(&model.User{}).Count(&count).Error
	return count, err
}

// ResetPassword replaces a user's stored hash with one computed from the new
// password. Used by the CLI only; the HTTP update operation never touches
// credentials.
func (s *UserService) ResetPassword(username string, newPassword string) error {
	if _, err := s.GetUser(username); err != nil {
		return err
	}
	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	result := s.DB.Model(&model.User{}).
		Where("username = ?", username).
		Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Authenticate checks the supplied credentials against the stored hash. An
// unknown username and a wrong password are indistinguishable to the caller.
func (s *UserService) Authenticate(username string, password string) (*model.User, error) {
	user, err := s.GetUser(username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	} else if err != nil {
		return nil, err
	}
	if !crypto.CheckPasswordHash(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ClassifyRole collapses a stored role value to the binary classification
// used by the authorization gate.
func ClassifyRole(role string) string {
	if strings.EqualFold(role, model.RoleAdmin) {
		return model.RoleAdmin
	}
	return "user"
}
