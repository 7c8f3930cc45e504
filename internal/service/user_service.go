package service

import (
	"errors"
	"strings"

	"github.com/sitecms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is disabled")
	ErrCannotDeleteSelf   = errors.New("you cannot delete your own account")
	ErrRoleInvalid        = errors.New("role is invalid")
)

// UserFilter describes filters for listing accounts.
type UserFilter struct {
	Search  string
	Role    string
	Page    int
	PerPage int
}

// UserInput is used when an admin registers an account.
type UserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Active   *bool
}

// UserUpdate carries optional changes; nil or empty fields are kept.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Active   *bool
}

// UserService manages dashboard accounts.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a UserService instance.
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// Authenticate checks the credentials and returns the matching active user.
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", db.NormalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrUserInactive
	}
	return &user, nil
}

// Create registers a new account.
func (s *UserService) Create(input UserInput) (*db.User, error) {
	role, err := normalizeRole(input.Role)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Name:   strings.TrimSpace(input.Name),
		Email:  db.NormalizeEmail(input.Email),
		Role:   role,
		Active: true,
	}
	if input.Active != nil {
		user.Active = *input.Active
	}
	if err := user.SetPassword(input.Password); err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, user.Email, 0); err != nil {
			return err
		}
		return tx.Create(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of update to the account.
func (s *UserService) Update(id uint, update UserUpdate) (*db.User, error) {
	var user db.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if update.Name != nil && strings.TrimSpace(*update.Name) != "" {
			user.Name = strings.TrimSpace(*update.Name)
		}
		if update.Email != nil && strings.TrimSpace(*update.Email) != "" {
			email := db.NormalizeEmail(*update.Email)
			if err := ensureEmailFree(tx, email, user.ID); err != nil {
				return err
			}
			user.Email = email
		}
		if update.Password != nil && *update.Password != "" {
			if err := user.SetPassword(*update.Password); err != nil {
				return err
			}
		}
		if update.Role != nil && strings.TrimSpace(*update.Role) != "" {
			role, err := normalizeRole(*update.Role)
			if err != nil {
				return err
			}
			user.Role = role
		}
		if update.Active != nil {
			user.Active = *update.Active
		}

		return tx.Save(&user).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes an account. actorID is the user performing the delete.
func (s *UserService) Delete(id, actorID uint) error {
	if id == actorID {
		return ErrCannotDeleteSelf
	}

	result := s.db.Delete(&db.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Get fetches an account by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindActive fetches an account that is allowed to sign in.
func (s *UserService) FindActive(id uint) (*db.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserInactive
	}
	return user, nil
}

// List returns accounts ordered by name.
func (s *UserService) List(filter UserFilter) (ListResult[db.User], error) {
	result := newListResult[db.User](filter.Page, filter.PerPage)

	query := s.db.Model(&db.User{})
	if role := strings.TrimSpace(filter.Role); role != "" {
		query = query.Where("role = ?", strings.ToLower(role))
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := likePattern(search)
		query = query.Where("(name LIKE ? ESCAPE '\\' OR email LIKE ? ESCAPE '\\')", like, like)
	}

	if err := result.fill(query, nil, "name asc", "id asc"); err != nil {
		return result, err
	}
	return result, nil
}

// Count returns the number of accounts.
func (s *UserService) Count() (int64, error) {
	var count int64
	return count, s.db.Model(&db.User{}).Count(&count).Error
}

func ensureEmailFree(tx *gorm.DB, email string, excludeID uint) error {
	var count int64
	query := tx.Model(&db.User{}).Where("email = ?", email)
	if excludeID > 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrEmailTaken
	}
	return nil
}

func normalizeRole(role string) (string, error) {
	role = strings.ToLower(strings.TrimSpace(role))
	switch role {
	case "":
		return db.RoleEditor, nil
	case db.RoleAdmin, db.RoleEditor:
		return role, nil
	default:
		return "", ErrRoleInvalid
	}
}
