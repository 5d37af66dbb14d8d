package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/koewave/koewave-backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for profile directory operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsersByFirebaseUIDs(firebaseUIDs []string) ([]models.User, error)
	UpdateUser(user *models.User) error
	SearchUsers(query string) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new profile row
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	if user.JoinedAt.IsZero() {
		user.JoinedAt = time.Now()
	}
	return r.db.Create(user).Error
}

// GetUserByFirebaseUID retrieves a profile by its auth-provider UID
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %s", models.ErrNotFound, firebaseUID)
		}
		return nil, err
	}
	return &user, nil
}

// GetUsersByFirebaseUIDs batch-resolves profiles for follower/following
// lists. Missing uids are silently skipped.
func (r *PostgresUserRepository) GetUsersByFirebaseUIDs(firebaseUIDs []string) ([]models.User, error) {
	if len(firebaseUIDs) == 0 {
		return []models.User{}, nil
	}
	var users []models.User
	if err := r.db.Where("firebase_uid IN (?)", firebaseUIDs).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing profile
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// SearchUsers searches profiles by username or display name
func (r *PostgresUserRepository) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("LOWER(username) LIKE LOWER(?) OR LOWER(display_name) LIKE LOWER(?)", "%"+query+"%", "%"+query+"%").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
