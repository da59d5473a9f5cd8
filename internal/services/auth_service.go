package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"rockie-classroom-api/internal/models"
	"rockie-classroom-api/internal/repositories"
)

// ErrInvalidCredentials is returned for any login failure a caller may see.
// Unknown email and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginRequest is the body accepted by the login endpoint.
type LoginRequest struct {
	TenantID     string `json:"tenant_id" validate:"required"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	Password     string `json:"password" validate:"required"`
}

// LoginResponse carries the issued token back to the caller.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Expires string `json:"expires"`
}

// AuthService issues access tokens for student credentials.
type AuthService interface {
	// Login checks the student's password and issues a fresh token. Returns
	// ErrInvalidCredentials when the email or password is wrong.
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

// authService implements the AuthService interface
type authService struct {
	students repositories.StudentStore
	tokens   repositories.TokenStore
	tokenTTL time.Duration
	validate *validator.Validate
	logger   *logrus.Logger
}

// NewAuthService creates a new auth service instance
func NewAuthService(students repositories.StudentStore, tokens repositories.TokenStore, tokenTTL time.Duration, logger *logrus.Logger) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &authService{
		students: students,
		tokens:   tokens,
		tokenTTL: tokenTTL,
		validate: validator.New(),
		logger:   logger,
	}
}

// Login checks credentials and stores a freshly issued token.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("login request cannot be nil")
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", repositories.ErrValidation, err)
	}

	student, err := s.students.GetByEmail(ctx, req.TenantID, req.StudentEmail)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up student: %w", err)
	}

	if !student.CheckPassword(req.Password) {
		return nil, ErrInvalidCredentials
	}

	token := models.NewAccessToken(student.TenantID, student.StudentID, s.tokenTTL)
	if err := s.tokens.Put(ctx, token); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"tenant_id":  student.TenantID,
		"student_id": student.StudentID,
	}).Info("Issued access token")

	return &LoginResponse{
		Message: "Login successful",
		Token:   token.Token,
		Expires: token.Expires,
	}, nil
}
