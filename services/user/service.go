package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "github.com/Happyesss/careerlive---alpha/database/repository/user"
	"github.com/Happyesss/careerlive---alpha/models"
	"github.com/Happyesss/careerlive---alpha/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionTTL is how long an issued login token stays valid.
const sessionTTL = 7 * 24 * time.Hour

var (
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidRole rejects registrations outside the two known roles.
	ErrInvalidRole = errors.New("role must be mentor or mentee")

	// ErrUserNotFound means the user id resolves to nothing.
	ErrUserNotFound = errors.New("user not found")
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Role      string `json:"role" binding:"required"`
	ImageURL  string `json:"imageUrl"`
}

// UserService handles accounts, sessions and role directories.
type UserService interface {
	// Register creates the account and returns it with a session token.
	Register(ctx context.Context, in RegisterInput) (*models.User, string, error)

	// Login verifies credentials and returns the user with a session token.
	Login(ctx context.Context, email, password string) (*models.User, string, error)

	GetByID(ctx context.Context, id string) (*models.User, error)
	ListMentors(ctx context.Context) ([]models.User, error)
	ListMentees(ctx context.Context) ([]models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	users userRepo.UserRepository
}

// NewDefaultUserService creates a UserService over the given repository.
func NewDefaultUserService(users userRepo.UserRepository) *DefaultUserService {
	return &DefaultUserService{users: users}
}

func (s *DefaultUserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	role := strings.ToLower(in.Role)
	if role != models.RoleMentor && role != models.RoleMentee {
		return nil, "", ErrInvalidRole
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         role,
		ImageURL:     in.ImageURL,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := utils.GenerateToken(user.ID, user.Email, sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(user.ID, user.Email, sessionTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *DefaultUserService) ListMentors(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleMentor)
}

func (s *DefaultUserService) ListMentees(ctx context.Context) ([]models.User, error) {
	return s.users.ListByRole(ctx, models.RoleMentee)
}
