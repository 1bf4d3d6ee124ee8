package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"clinical-study/internal/delivery/dto"
	"clinical-study/internal/domain/entity"
	"clinical-study/internal/domain/repository"
	"clinical-study/internal/service"
	"clinical-study/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context, employeeID int64, tokenID string) error
	// Authenticate resolves a bearer token to its claims.
	Authenticate(ctx context.Context, token string) (*jwt.Claims, error)
	CreateEmployee(ctx context.Context, username, password string) (*entity.Employee, error)
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	employeeRepo repository.EmployeeRepository
	jwtService   *jwt.JWTService
	sessions     service.SessionStore
}

// NewAuthUsecase builds the login flow. jwtService may be nil, in which case
// login only verifies credentials and issues no token.
func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	employeeRepo repository.EmployeeRepository,
	jwtService *jwt.JWTService,
	sessions service.SessionStore,
) AuthUsecase {
	return &authUsecase{
		db:           db,
		log:          log,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		sessions:     sessions,
	}
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	password := strings.TrimSpace(req.Password)
	if username == "" || password == "" {
		verr := &ValidationError{}
		if username == "" {
			verr.add("benutzername", "benutzername is required")
		}
		if password == "" {
			verr.add("passwort", "passwort is required")
		}
		return nil, verr
	}

	// Find employee by username (read-only, no transaction needed)
	employee, err := u.employeeRepo.FindByUsername(ctx, u.db, username)
	if err != nil {
		u.log.Warnf("Failed to find employee by username: %+v", err)
		return nil, err
	}
	if employee == nil || !passwordMatches(employee.Password, password) {
		return nil, ErrInvalidCredentials
	}

	resp := &dto.LoginResponse{EmployeeID: employee.ID}
	if u.jwtService == nil {
		return resp, nil
	}

	token, tokenID, err := u.jwtService.GenerateAccessToken(employee.ID, employee.Username)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	if err := u.sessions.Register(ctx, employee.ID, tokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}

	resp.Token = token
	resp.ExpiresIn = int64(u.jwtService.GetAccessExpiry().Seconds())
	return resp, nil
}

func (u *authUsecase) Logout(ctx context.Context, employeeID int64, tokenID string) error {
	if err := u.sessions.Revoke(ctx, employeeID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, token string) (*jwt.Claims, error) {
	if u.jwtService == nil {
		return nil, ErrInvalidToken
	}
	claims, err := u.jwtService.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	active, err := u.sessions.IsActive(ctx, claims.EmployeeID, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check access token: %+v", err)
		return nil, err
	}
	if !active {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// CreateEmployee stores a staff account with a bcrypt hashed password.
func (u *authUsecase) CreateEmployee(ctx context.Context, username, password string) (*entity.Employee, error) {
	username = strings.TrimSpace(username)
	password = strings.TrimSpace(password)
	if username == "" {
		return nil, newValidationError("benutzername", "benutzername is required")
	}
	if password == "" {
		return nil, newValidationError("passwort", "passwort is required")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	employee := &entity.Employee{Username: username, Password: string(hashedPassword)}
	if err := u.employeeRepo.Create(ctx, u.db, employee); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return nil, ErrUsernameTaken
		}
		u.log.Warnf("Failed to create employee: %+v", err)
		return nil, err
	}

	u.log.WithField("employee_id", employee.ID).Info("Employee created")
	return employee, nil
}

// passwordMatches accepts bcrypt hashes and legacy plaintext passwords. A
// stored value counts as a hash only when bcrypt can parse its cost.
func passwordMatches(stored, given string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}
