package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/statushub/profiles-be/internal/apperr"
	"github.com/statushub/profiles-be/internal/models"
)

// MinPasswordLength is the minimum accepted plaintext password length.
const MinPasswordLength = 8

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(email, name, password string) (models.User, error)
	CreateSuperuser(email, name, password string) (models.User, error)
	Authenticate(email, password string) (models.User, error)
	GetUserByID(id string) (models.User, error)
	ListUsers(search string) ([]models.User, error)
	UpdateUser(id, email, name string) (models.User, error)
	PatchUser(id string, patch UserPatch) (models.User, error)
}

// UserPatch carries the optional fields of a partial profile update. Nil
// fields are left untouched.
type UserPatch struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// UserService provides business logic for account management.
type UserService struct {
	db *sql.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *sql.DB) *UserService {
	return &UserService{db: db}
}

// NormalizeEmail lowercases the domain segment of an email address. The
// local part is left untouched: some providers are case-sensitive on it,
// while the domain never is, and normalizing the domain is what prevents
// case-variant duplicate accounts.
func NormalizeEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at+1] + strings.ToLower(email[at+1:])
}

func validateRegistration(email, name, password string) error {
	fields := make(map[string]string)
	if err := validateEmail(email); err != nil {
		fields["email"] = err.Error()
	}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "is required"
	}
	if len(password) < MinPasswordLength {
		fields["password"] = fmt.Sprintf("must be at least %d characters", MinPasswordLength)
	}
	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errors.New("is required")
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return errors.New("is not a valid email address")
	}
	return nil
}

// isUniqueViolation detects a unique-constraint failure from the sqlite
// driver. modernc exposes no stable sentinel, so match on the message text.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Register creates a new account, hashing the password before persistence.
// A duplicate email, after domain normalization, is reported as a
// field-level validation error rather than a raw storage fault.
func (s *UserService) Register(email, name, password string) (models.User, error) {
	if err := validateRegistration(email, name, password); err != nil {
		return models.User{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        NormalizeEmail(email),
		Name:         name,
		PasswordHash: string(hashedPassword),
		IsActive:     true,
	}

	stmt, err := s.db.Prepare("INSERT INTO users(id, email, name, password_hash, is_active) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return models.User{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(user.ID, user.Email, user.Name, user.PasswordHash, user.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.NewValidation("email", "is already registered")
		}
		return models.User{}, err
	}

	return s.GetUserByID(user.ID)
}

// CreateSuperuser reuses the registration path, then elevates the account
// with the staff and superuser flags.
func (s *UserService) CreateSuperuser(email, name, password string) (models.User, error) {
	user, err := s.Register(email, name, password)
	if err != nil {
		return models.User{}, err
	}

	_, err = s.db.Exec("UPDATE users SET is_staff = 1, is_superuser = 1 WHERE id = ?", user.ID)
	if err != nil {
		return models.User{}, err
	}
	return s.GetUserByID(user.ID)
}

// GetUserByID retrieves a single user by their ID.
func (s *UserService) GetUserByID(id string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, name, is_active, is_staff, is_superuser, created_at FROM users WHERE id = ?", id)

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// GetUserByEmail retrieves a single user by their normalized email,
// including the password hash.
func (s *UserService) GetUserByEmail(email string) (models.User, error) {
	row := s.db.QueryRow("SELECT id, email, name, password_hash, is_active, is_staff, is_superuser, created_at FROM users WHERE email = ?", NormalizeEmail(email))

	var user models.User
	err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.User{}, apperr.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// ListUsers returns all accounts, optionally filtered by a name or email
// substring. The filter is a browsing convenience, not a security boundary.
func (s *UserService) ListUsers(search string) ([]models.User, error) {
	query := "SELECT id, email, name, is_active, is_staff, is_superuser, created_at FROM users ORDER BY created_at"
	args := []interface{}{}
	if search != "" {
		query = "SELECT id, email, name, is_active, is_staff, is_superuser, created_at FROM users WHERE name LIKE ? OR email LIKE ? ORDER BY created_at"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.IsActive, &user.IsStaff, &user.IsSuperuser, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateUser replaces a user's email and name.
func (s *UserService) UpdateUser(id, email, name string) (models.User, error) {
	fields := make(map[string]string)
	if err := validateEmail(email); err != nil {
		fields["email"] = err.Error()
	}
	if strings.TrimSpace(name) == "" {
		fields["name"] = "is required"
	}
	if len(fields) > 0 {
		return models.User{}, &apperr.ValidationError{Fields: fields}
	}

	res, err := s.db.Exec("UPDATE users SET email = ?, name = ? WHERE id = ?", NormalizeEmail(email), name, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.User{}, apperr.NewValidation("email", "is already registered")
		}
		return models.User{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return models.User{}, apperr.ErrNotFound
	}
	return s.GetUserByID(id)
}

// PatchUser applies a partial profile update. Only the provided fields
// change; applying the same patch twice yields the same final state.
func (s *UserService) PatchUser(id string, patch UserPatch) (models.User, error) {
	current, err := s.GetUserByID(id)
	if err != nil {
		return models.User{}, err
	}

	email, name := current.Email, current.Name
	if patch.Email != nil {
		email = *patch.Email
	}
	if patch.Name != nil {
		name = *patch.Name
	}
	return s.UpdateUser(id, email, name)
}

// Authenticate verifies a user's credentials. The failure reason is never
// surfaced to the caller.
func (s *UserService) Authenticate(email, password string) (models.User, error) {
	user, err := s.GetUserByEmail(email)
	if err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	if !user.IsActive {
		return models.User{}, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}

	// Don't send the password hash to the client
	user.PasswordHash = ""
	return user, nil
}
