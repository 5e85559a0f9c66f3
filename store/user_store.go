package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/namishh/bubble/models"
)

// UserStore is the persistent collection of user records. Lookups return
// ErrNotFound when no row matches; writes surface ErrDuplicateUsername or
// ErrDuplicateEmail on uniqueness conflicts.
type UserStore interface {
	FindByID(id uint) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(username, email, passwordHash string) (*models.User, error)
	Update(user *models.User) error
	SetPassword(userID uint, newHash string) error
}

type GormUserStore struct {
	db *gorm.DB
}

func NewUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

func (s *GormUserStore) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// Create inserts a new user. The pre-checks are a fast path for friendly
// field errors; the unique indexes remain the final authority, so a racing
// insert still comes back as the right duplicate sentinel.
func (s *GormUserStore) Create(username, email, passwordHash string) (*models.User, error) {
	if err := s.checkUnique(username, email, 0); err != nil {
		return nil, err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.classifyDuplicate(username, email, 0)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// Update persists mutated fields. A user keeping their own current username
// or email is not a conflict.
func (s *GormUserStore) Update(user *models.User) error {
	if err := s.checkUnique(user.Username, user.Email, user.ID); err != nil {
		return err
	}

	if err := s.db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return s.classifyDuplicate(user.Username, user.Email, user.ID)
		}
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *GormUserStore) SetPassword(userID uint, newHash string) error {
	res := s.db.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", newHash)
	if res.Error != nil {
		return fmt.Errorf("set password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// checkUnique reports a duplicate sentinel when username or email belongs to
// a row other than excludeID.
func (s *GormUserStore) checkUnique(username, email string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check username uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicateUsername
	}

	if err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", email, excludeID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("check email uniqueness: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	return nil
}

// classifyDuplicate decides which field tripped a unique index after the
// insert itself failed.
func (s *GormUserStore) classifyDuplicate(username, email string, excludeID uint) error {
	var count int64
	if err := s.db.Model(&models.User{}).
		Where("username = ? AND id <> ?", username, excludeID).
		Count(&count).Error; err == nil && count > 0 {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
