package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

const (
	maxUsernameLen = 80
	maxEmailLen    = 120
	maxPasswordLen = 72 // bcrypt ignores anything past 72 bytes
)

// UserService describes user lifecycle operations.
type UserService interface {
	Signup(ctx context.Context, username, email, password string) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, actorID, id int64, update domain.UserUpdate) (*domain.User, error)
	Delete(ctx context.Context, actorID, id int64) error
}

type userService struct {
	users repository.UserRepository
	cost  int
}

// NewUserService builds a UserService hashing passwords with bcrypt.DefaultCost.
func NewUserService(users repository.UserRepository) UserService {
	return NewUserServiceWithCost(users, bcrypt.DefaultCost)
}

// NewUserServiceWithCost lets tests trade hash strength for speed.
func NewUserServiceWithCost(users repository.UserRepository, cost int) UserService {
	return &userService{
		users: users,
		cost:  cost,
	}
}

func (s *userService) Signup(ctx context.Context, username, email, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := checkText("username", username, maxUsernameLen); err != nil {
		return nil, err
	}
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	if _, err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, actorID, id int64, update domain.UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID != id {
		return nil, ErrForbidden
	}

	if update.Username != nil {
		username := strings.TrimSpace(*update.Username)
		if err := checkText("username", username, maxUsernameLen); err != nil {
			return nil, err
		}
		user.Username = username
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if err := checkEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if update.Password != nil {
		hash, err := s.hashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

// Delete removes a user that owns no threads or comments.
func (s *userService) Delete(ctx context.Context, actorID, id int64) error {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return err
	}
	if actorID != id {
		return ErrForbidden
	}

	threads, comments, err := s.users.CountOwned(ctx, id)
	if err != nil {
		return err
	}
	if threads > 0 || comments > 0 {
		return fmt.Errorf("user owns %d threads and %d comments: %w", threads, comments, repository.ErrReferenced)
	}

	return s.users.Delete(ctx, id)
}

func (s *userService) hashPassword(password string) (string, error) {
	if password == "" {
		return "", required("password")
	}
	if len(password) > maxPasswordLen {
		return "", invalid("password", fmt.Sprintf("password must be at most %d bytes", maxPasswordLen))
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

func checkEmail(email string) error {
	if err := checkText("email", email, maxEmailLen); err != nil {
		return err
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return invalid("email", "email is not a valid address")
	}
	return nil
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	return &domain.User{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
