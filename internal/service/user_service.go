package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"aportes-api/internal/domain"
	"aportes-api/internal/repository"
)

var (
	// ErrInvalidCredentials indicates that the provided password is incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound indicates an unknown login handle.
	ErrUserNotFound = errors.New("usuario not found")
	// ErrUserAlreadyExists is returned when registering an already taken handle.
	ErrUserAlreadyExists = errors.New("usuario already exists")
)

// LoginResult carries the issued token together with the user's public identity.
type LoginResult struct {
	Token   string
	Nombre  string
	Usuario string
}

// UserService describes account lifecycle and session token operations.
type UserService interface {
	Register(ctx context.Context, nombre, usuario, contrasena string) (*domain.Usuario, error)
	Login(ctx context.Context, usuario, contrasena string) (*LoginResult, error)
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)
}

type userService struct {
	users     repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) UserService {
	return &userService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
	}
}

func (s *userService) Register(ctx context.Context, nombre, usuario, contrasena string) (*domain.Usuario, error) {
	nombre = strings.TrimSpace(nombre)
	usuario = strings.TrimSpace(usuario)
	contrasena = strings.TrimSpace(contrasena)

	if nombre == "" {
		return nil, fmt.Errorf("%w: nombre is required", ErrInvalidInput)
	}
	if usuario == "" {
		return nil, fmt.Errorf("%w: usuario is required", ErrInvalidInput)
	}
	if contrasena == "" {
		return nil, fmt.Errorf("%w: contrasena is required", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(contrasena), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.Usuario{
		Nombre:       nombre,
		Usuario:      usuario,
		PasswordHash: string(hash),
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsuario) {
			return nil, ErrUserAlreadyExists
		}
		return nil, err
	}

	return sanitizeUsuario(user), nil
}

func (s *userService) Login(ctx context.Context, usuario, contrasena string) (*LoginResult, error) {
	usuario = strings.TrimSpace(usuario)
	contrasena = strings.TrimSpace(contrasena)
	if usuario == "" || contrasena == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsuario(ctx, usuario)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(contrasena)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	return &LoginResult{
		Token:   token,
		Nombre:  user.Nombre,
		Usuario: user.Usuario,
	}, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return sanitizeUsuario(user), nil
}

// generateToken issues an HS256 token whose "id" claim carries the user id.
// Expiry is the only invalidation mechanism; there is no revocation list.
func (s *userService) generateToken(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":  userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func sanitizeUsuario(user *domain.Usuario) *domain.Usuario {
	if user == nil {
		return nil
	}
	return &domain.Usuario{
		ID:        user.ID,
		Nombre:    user.Nombre,
		Usuario:   user.Usuario,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
