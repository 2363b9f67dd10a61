package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
	"github.com/atlasvoyage/travel_accounting_app/internal/platform/config"
)

type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	cfg          *config.Config
}

// NewEmployeeService creates a new employee service.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, cfg *config.Config) portssvc.EmployeeSvcFacade {
	return &employeeService{employeeRepo: employeeRepo, cfg: cfg}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, userID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.employeeRepo.FindEmployeeByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate email: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email %s", apperrors.ErrDuplicate, req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	employee := domain.Employee{
		EmployeeID:            uuid.NewString(),
		Name:                  req.Name,
		Email:                 req.Email,
		DefaultCommissionRate: req.DefaultCommissionRate,
		PasswordHash:          string(hash),
		IsActive:              true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		return nil, fmt.Errorf("failed to save employee: %w", err)
	}

	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID))
	return &employee, nil
}

func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, userID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to find employee %s: %w", employeeID, err)
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.DefaultCommissionRate != nil {
		employee.DefaultCommissionRate = req.DefaultCommissionRate
	}
	employee.LastUpdatedAt = time.Now().UTC()
	employee.LastUpdatedBy = userID

	if err := s.employeeRepo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, fmt.Errorf("failed to update employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *employeeService) AuthenticateEmployee(ctx context.Context, email, password string) (string, *domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return "", nil, fmt.Errorf("failed to find employee by email: %w", err)
	}
	if !employee.IsActive {
		return "", nil, fmt.Errorf("%w: employee is inactive", apperrors.ErrForbidden)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(password)); err != nil {
		logger.Warn("Failed login attempt", slog.String("employee_id", employee.EmployeeID))
		return "", nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   employee.EmployeeID,
		Issuer:    s.cfg.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.JWTExpiryDuration)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, employee, nil
}

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee %s: %w", employeeID, err)
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	employees, err := s.employeeRepo.ListEmployees(ctx, 100, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
