package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atlasvoyage/travel_accounting_app/internal/apperrors"
	"github.com/atlasvoyage/travel_accounting_app/internal/core/domain"
	portsrepo "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/repositories"
	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/dto"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

// maxAccountDepth bounds the parent chain; a deeper chain indicates a cycle
// or corrupt data and is rejected.
const maxAccountDepth = 16

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// validateParentChain ensures the proposed parent exists and that attaching
// to it keeps the account tree acyclic and within the depth bound.
func (s *accountService) validateParentChain(ctx context.Context, parentID string, newAccountID string) error {
	currentID := parentID
	for depth := 0; currentID != ""; depth++ {
		if depth >= maxAccountDepth {
			return fmt.Errorf("%w: account parent chain exceeds depth %d", apperrors.ErrValidation, maxAccountDepth)
		}
		if currentID == newAccountID {
			return fmt.Errorf("%w: account parent chain contains a cycle", apperrors.ErrValidation)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, currentID)
			}
			return fmt.Errorf("failed to validate parent chain: %w", err)
		}
		currentID = parent.ParentAccountID
	}
	return nil
}

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.accountRepo.FindAccountByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicate, req.Code)
	}

	now := time.Now().UTC()
	accountID := uuid.NewString()

	if req.ParentAccountID != "" {
		if err := s.validateParentChain(ctx, req.ParentAccountID, accountID); err != nil {
			return nil, err
		}
	}

	account := domain.Account{
		AccountID:       accountID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     domain.AccountType(req.AccountType),
		ParentAccountID: req.ParentAccountID,
		Description:     req.Description,
		IsActive:        true,
		DebitBalance:    decimal.Zero,
		CreditBalance:   decimal.Zero,
		Balance:         decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", accountID), slog.String("code", req.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", accountID, err)
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: code %s", apperrors.ErrMissingAccount, code)
		}
		return nil, fmt.Errorf("failed to get account by code %s: %w", code, err)
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, params dto.ListAccountsParams) (*dto.ListAccountsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 100
	}

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, params.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	resp := &dto.ListAccountsResponse{Accounts: make([]dto.AccountResponse, len(accounts))}
	for i := range accounts {
		resp.Accounts[i] = dto.ToAccountResponse(&accounts[i])
	}
	return resp, nil
}
