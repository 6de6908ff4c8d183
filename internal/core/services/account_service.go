package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/praxio/fundledger/internal/apperrors"
	"github.com/praxio/fundledger/internal/core/domain"
	portsrepo "github.com/praxio/fundledger/internal/core/ports/repositories"
	portssvc "github.com/praxio/fundledger/internal/core/ports/services"
	"github.com/praxio/fundledger/internal/dto"
	"github.com/praxio/fundledger/internal/utils/accounting"
)

var (
	ErrDuplicateAccountNumber = errors.New("account number already exists")
	ErrParentAccountNotFound  = errors.New("parent account not found")
	ErrParentAccountInactive  = errors.New("parent account is inactive")
	ErrParentTypeMismatch     = errors.New("parent account type does not match")
	ErrAccountHierarchyCycle  = errors.New("account hierarchy contains a cycle")
)

// maxHierarchyDepth bounds parent-chain walks so corrupt data cannot loop
// forever.
const maxHierarchyDepth = 32

// accountService implements chart-of-accounts management.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
	}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount registers a new GL account. The normal balance is derived
// from the account type; callers cannot override it.
func (s *accountService) CreateAccount(ctx context.Context, creatorUserID string, req dto.CreateAccountRequest) (domain.GLAccount, error) {
	accountType := domain.AccountType(strings.ToUpper(req.AccountType))
	normalBalance, err := accounting.NormalBalanceFor(accountType)
	if err != nil {
		return domain.GLAccount{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	// Account numbers are the user-facing identity; enforce uniqueness up
	// front so callers get a clear conflict instead of a DB error.
	existing, err := s.accountRepo.FindAccountByNumber(ctx, req.AccountNumber)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account number uniqueness", slog.String("account_number", req.AccountNumber))
		return domain.GLAccount{}, fmt.Errorf("failed to check account number: %w", err)
	}
	if existing != nil {
		return domain.GLAccount{}, fmt.Errorf("%w: %s", ErrDuplicateAccountNumber, req.AccountNumber)
	}

	if req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return domain.GLAccount{}, fmt.Errorf("%w: %s", ErrParentAccountNotFound, req.ParentAccountID)
			}
			s.LogError(ctx, err, "Failed to fetch parent account", slog.String("parent_account_id", req.ParentAccountID))
			return domain.GLAccount{}, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if !parent.IsActive {
			return domain.GLAccount{}, fmt.Errorf("%w: %s", ErrParentAccountInactive, req.ParentAccountID)
		}
		if parent.AccountType != accountType {
			return domain.GLAccount{}, fmt.Errorf("%w: parent is %s, child is %s", ErrParentTypeMismatch, parent.AccountType, accountType)
		}
	}

	allowsDirectPosting := true
	if req.AllowsDirectPosting != nil {
		allowsDirectPosting = *req.AllowsDirectPosting
	}

	now := time.Now().UTC()
	account := domain.GLAccount{
		AccountID:           uuid.NewString(),
		AccountNumber:       req.AccountNumber,
		Name:                req.Name,
		AccountType:         accountType,
		Category:            req.Category,
		ParentAccountID:     req.ParentAccountID,
		NormalBalance:       normalBalance,
		Description:         req.Description,
		IsActive:            true,
		AllowsDirectPosting: allowsDirectPosting,
		RequiresSubAccount:  req.RequiresSubAccount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_number", req.AccountNumber))
		return domain.GLAccount{}, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("account_number", account.AccountNumber))
	return account, nil
}

// GetAccountByID retrieves an account by its ID.
func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (domain.GLAccount, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return domain.GLAccount{}, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return *account, nil
}

// ListAccounts retrieves accounts, optionally restricted to active ones.
func (s *accountService) ListAccounts(ctx context.Context, activeOnly bool) ([]domain.GLAccount, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountPath walks the parent chain and renders the hierarchy from the
// root ancestor down to the account, joined by " > ".
func (s *accountService) GetAccountPath(ctx context.Context, accountID string) (string, error) {
	names := make([]string, 0, 4)
	seen := make(map[string]bool)

	currentID := accountID
	for depth := 0; currentID != ""; depth++ {
		if depth >= maxHierarchyDepth || seen[currentID] {
			s.LogError(ctx, ErrAccountHierarchyCycle, "Account hierarchy walk aborted", slog.String("account_id", accountID))
			return "", ErrAccountHierarchyCycle
		}
		seen[currentID] = true

		account, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) && currentID != accountID {
				// Dangling parent reference; stop the walk at what we have.
				s.LogWarn(ctx, "Parent account missing during path walk", slog.String("account_id", accountID), slog.String("missing_id", currentID))
				break
			}
			return "", fmt.Errorf("failed to find account %s: %w", currentID, err)
		}
		names = append(names, account.Name)
		currentID = account.ParentAccountID
	}

	// Reverse so the root ancestor comes first.
	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, " > "), nil
}

// DeactivateAccount soft-deletes an account.
func (s *accountService) DeactivateAccount(ctx context.Context, updaterUserID string, accountID string) error {
	if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
		return fmt.Errorf("failed to find account %s: %w", accountID, err)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, accountID, updaterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account %s: %w", accountID, err)
	}

	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID))
	return nil
}
