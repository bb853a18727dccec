package auth

import (
	"errors"
	"fmt"

	"librarium/internal/config"
	"librarium/internal/database/users"
	"librarium/internal/entities"
)

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Service handles registration and authentication of users.
type Service struct {
	users      *users.Repository
	bcryptCost int
}

// NewService creates a new authentication service.
func NewService(repo *users.Repository, cfg config.Auth) *Service {
	return &Service{
		users:      repo,
		bcryptCost: cfg.BcryptCost,
	}
}

// Register creates a new user. Username and email uniqueness are both
// checked before inserting, so the caller gets a precise conflict signal
// rather than a database constraint error.
func (s *Service) Register(req *entities.RegisterRequest) (*entities.User, error) {
	existing, err := s.users.GetByUsername(req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	existing, err = s.users.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.Create(req.Username, req.Email, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Authenticate validates credentials. The login may be a username or an
// email. Unknown logins and wrong passwords collapse into the same
// ErrInvalidCredentials so responses never leak account existence.
func (s *Service) Authenticate(login, password string) (*entities.User, error) {
	user, err := s.users.GetByLogin(login)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	return user, nil
}

// GetUserByID retrieves a user, or (nil, nil) when none exists.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	return s.users.GetByID(id)
}

// GetAllUsers returns every registered user.
func (s *Service) GetAllUsers() ([]entities.User, error) {
	return s.users.GetAll()
}

// DeleteUser removes a user account, returning the deleted user or
// (nil, nil) when the id does not exist.
func (s *Service) DeleteUser(id uint) (*entities.User, error) {
	return s.users.Delete(id)
}
