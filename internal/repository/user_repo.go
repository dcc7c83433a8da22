package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/KushalZanzari/Echo-AI/internal/domain"
)

// UserRepository handles account persistence
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with the given password hash
func (r *UserRepository) Create(user *domain.User, passwordHash string) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()

	_, err := r.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, user.ID, user.Name, user.Email, passwordHash, user.CreatedAt)

	return err
}

// GetByEmail retrieves a user and their password hash by email.
// Returns (nil, "", nil) when no such user exists.
func (r *UserRepository) GetByEmail(email string) (*domain.User, string, error) {
	user := &domain.User{}
	var hash string

	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE email = ?
	`, email).Scan(&user.ID, &user.Name, &user.Email, &hash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}

	return user, hash, nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(id string) (*domain.User, error) {
	user := &domain.User{}
	var hash string

	err := r.db.QueryRow(`
		SELECT id, name, email, password_hash, created_at
		FROM users WHERE id = ?
	`, id).Scan(&user.ID, &user.Name, &user.Email, &hash, &user.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}
