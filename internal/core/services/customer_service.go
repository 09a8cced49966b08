package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/platform/lock"
	"github.com/SscSPs/ledger_recon_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// DefaultLockTTL bounds how long a sync, merge or import may hold the customer book.
const DefaultLockTTL = 2 * time.Minute

// customerBookLockKey serializes every operation that rewrites customer/ledger links.
var customerBookLockKey = lock.Key("customers", "book")

// customerService implements the CustomerSvcFacade interface
type customerService struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	engine       *matching.Engine
	locker       lock.Locker
	lockTTL      time.Duration
}

// CustomerServiceOption is a functional option for configuring the customer service
type CustomerServiceOption func(*customerService)

// WithCustomerEngine sets the matching engine.
func WithCustomerEngine(engine *matching.Engine) CustomerServiceOption {
	return func(s *customerService) { s.engine = engine }
}

// WithCustomerLocker sets the lock used for sync and merge.
func WithCustomerLocker(locker lock.Locker, ttl time.Duration) CustomerServiceOption {
	return func(s *customerService) {
		s.locker = locker
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// WithCustomerPermissions sets the permission service.
func WithCustomerPermissions(p portssvc.PermissionSvc) CustomerServiceOption {
	return func(s *customerService) { s.Permissions = p }
}

// NewCustomerService creates a new customer service with the provided options
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade, options ...CustomerServiceOption) portssvc.CustomerSvcFacade {
	svc := &customerService{
		customerRepo: customerRepo,
		ledgerRepo:   ledgerRepo,
		engine:       matching.NewEngine(),
		locker:       lock.NewLocalLocker(),
		lockTTL:      DefaultLockTTL,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure customerService implements the CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

func (s *customerService) MatchCustomer(ctx context.Context, session domain.SessionContext, req dto.MatchCustomerRequest) (domain.MatchResult, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersView); err != nil {
		return domain.MatchResult{}, err
	}

	ledgers, err := s.ledgerRepo.ListAllLedgers(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledgers for matching")
		return domain.MatchResult{}, fmt.Errorf("failed to load ledgers: %w", err)
	}

	result := s.engine.FindMatchingLedger(domain.MatchCandidate{
		Name:  req.Name,
		GSTIN: req.GSTIN,
		Email: req.Email,
		Phone: req.Phone,
	}, ledgers)

	s.LogDebug(ctx, "Ledger match evaluated",
		slog.Bool("match_found", result.MatchFound),
		slog.String("reason", string(result.Reason)),
		slog.Int("pool_size", len(ledgers)))
	return result, nil
}

func (s *customerService) CreateCustomer(ctx context.Context, session domain.SessionContext, req dto.CreateCustomerRequest) (*matching.CreateCustomerResult, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersCreate); err != nil {
		return nil, err
	}

	var linked *domain.Ledger
	if req.LedgerID != "" {
		l, err := s.ledgerRepo.FindLedgerByID(ctx, req.LedgerID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewNotFoundError(fmt.Sprintf("Ledger not found: %s", req.LedgerID))
			}
			s.LogError(ctx, err, "Failed to look up ledger", slog.String("ledger_id", req.LedgerID))
			return nil, fmt.Errorf("failed to look up ledger: %w", err)
		}
		linked = l
	}

	result, err := s.engine.CreateCustomerWithLedger(matching.CreateCustomerInput{
		Name:                 req.Name,
		GSTIN:                req.GSTIN,
		PAN:                  req.PAN,
		Email:                req.Email,
		Phone:                req.Phone,
		BillingAddress:       req.BillingAddress,
		ShippingAddress:      req.ShippingAddress,
		DefaultPaymentTerms:  req.DefaultPaymentTerms,
		DefaultPlaceOfSupply: req.DefaultPlaceOfSupply,
		ExistingLedgerID:     req.LedgerID,
		CreateLedger:         req.CreateLedger,
		LedgerCode:           req.LedgerCode,
		OpeningBalance:       req.OpeningBalance,
		BalanceType:          req.BalanceType,
	}, session.UserID)
	if err != nil {
		return nil, err
	}

	var entries []domain.AuditLogEntry
	switch {
	case result.Ledger != nil:
		entries = append(entries, s.engine.NewAuditEntry(
			domain.ActionAutoCreate, domain.EntityLedger, domain.StatusSuccess,
			fmt.Sprintf("Created ledger %q (%s) for new customer %q", result.Ledger.Name, result.Ledger.Code, result.Customer.Name),
			"", session.UserID))
	case linked != nil:
		entries = append(entries, s.engine.NewAuditEntry(
			domain.ActionLink, domain.EntityCustomer, domain.StatusSuccess,
			fmt.Sprintf("Linked new customer %q to existing ledger %q", result.Customer.Name, linked.Name),
			"", session.UserID))
	}

	if err := s.customerRepo.SaveCustomer(ctx, result.Customer, result.Ledger, entries); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("customer_id", result.Customer.CustomerID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	s.LogInfo(ctx, "Customer created",
		slog.String("customer_id", result.Customer.CustomerID),
		slog.String("ledger_id", result.Customer.LedgerID),
		slog.Bool("ledger_created", result.Ledger != nil))
	return &result, nil
}

func (s *customerService) GetCustomer(ctx context.Context, session domain.SessionContext, customerID string) (*dto.CustomerView, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersView); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return nil, err
	}

	ledgers, err := s.ledgersFor(ctx, []domain.Customer{*customer})
	if err != nil {
		return nil, err
	}
	view := dto.ToCustomerView(customer, ledgerOrNil(ledgers, customer.LedgerID))
	return &view, nil
}

func (s *customerService) ListCustomers(ctx context.Context, session domain.SessionContext, params dto.ListCustomersParams) ([]dto.CustomerView, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersView); err != nil {
		return nil, err
	}

	customers, err := s.customerRepo.ListCustomers(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}

	ledgers, err := s.ledgersFor(ctx, customers)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CustomerView, len(customers))
	for i := range customers {
		views[i] = dto.ToCustomerView(&customers[i], ledgerOrNil(ledgers, customers[i].LedgerID))
	}
	return views, nil
}

func (s *customerService) SyncLedgers(ctx context.Context, session domain.SessionContext) (*matching.SyncResult, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersSync); err != nil {
		return nil, err
	}

	var result matching.SyncResult
	err := lock.WithLock(ctx, s.locker, customerBookLockKey, s.lockTTL, func() error {
		customers, err := s.customerRepo.ListAllCustomers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
		ledgers, err := s.ledgerRepo.ListAllLedgers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load ledgers: %w", err)
		}

		result = s.engine.RunLedgerSync(customers, ledgers, session.UserID)

		if err := s.customerRepo.ApplyLedgerSync(ctx, result.UpdatedCustomers, result.NewLedgers, result.Logs); err != nil {
			return fmt.Errorf("failed to apply ledger sync: %w", err)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Ledger sync failed")
		return nil, err
	}

	s.LogInfo(ctx, "Ledger sync completed",
		slog.Int("updated_customers", len(result.UpdatedCustomers)),
		slog.Int("new_ledgers", len(result.NewLedgers)))
	return &result, nil
}

func (s *customerService) MergeCustomers(ctx context.Context, session domain.SessionContext, req dto.MergeCustomersRequest) (*domain.MergeResult, error) {
	if err := s.Authorize(ctx, session, domain.PermCustomersMerge); err != nil {
		return nil, err
	}

	var result domain.MergeResult
	err := lock.WithLock(ctx, s.locker, customerBookLockKey, s.lockTTL, func() error {
		customers, err := s.customerRepo.ListAllCustomers(ctx)
		if err != nil {
			return fmt.Errorf("failed to load customers: %w", err)
		}
		ledgers, err := s.ledgersFor(ctx, customers)
		if err != nil {
			return err
		}

		pool := mergePool(customers, ledgers, req.PrimaryID, req.SecondaryIDs)
		result, err = s.engine.MergeCustomers(req.PrimaryID, req.SecondaryIDs, pool, req.MergeBalances, session.UserID)
		if err != nil {
			return err
		}

		changes, err := mergeChanges(result, customers, req.MergeBalances, session.UserID)
		if err != nil {
			return err
		}
		changes.Now = result.AuditLog.Timestamp
		return s.customerRepo.ApplyMerge(ctx, changes)
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Customer merge failed", slog.String("primary_id", req.PrimaryID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Customers merged",
		slog.String("primary_id", result.PrimaryID),
		slog.Any("merged_ids", result.MergedIDs),
		slog.String("consolidated_balance", result.ConsolidatedBalance.String()))
	return &result, nil
}

func (s *customerService) DeleteCustomer(ctx context.Context, session domain.SessionContext, customerID string) error {
	if err := s.Authorize(ctx, session, domain.PermCustomersDelete); err != nil {
		return err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer", slog.String("customer_id", customerID))
		}
		return err
	}

	entry := s.engine.NewAuditEntry(domain.ActionDelete, domain.EntityCustomer, domain.StatusSuccess,
		fmt.Sprintf("Deleted customer %q", customer.Name), "", session.UserID)
	if err := s.customerRepo.SoftDeleteCustomer(ctx, customerID, session.UserID, entry.Timestamp, entry); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete customer", slog.String("customer_id", customerID))
		}
		return err
	}

	s.LogInfo(ctx, "Customer deleted", slog.String("customer_id", customerID))
	return nil
}

// ledgersFor loads the linked ledgers of customers keyed by id.
func (s *customerService) ledgersFor(ctx context.Context, customers []domain.Customer) (map[string]domain.Ledger, error) {
	ids := make([]string, 0, len(customers))
	for _, c := range customers {
		if c.HasLedger() {
			ids = append(ids, c.LedgerID)
		}
	}
	if len(ids) == 0 {
		return map[string]domain.Ledger{}, nil
	}
	ledgers, err := s.ledgerRepo.FindLedgersByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load linked ledgers", slog.Int("count", len(ids)))
		return nil, fmt.Errorf("failed to load ledgers: %w", err)
	}
	return ledgers, nil
}

func ledgerOrNil(ledgers map[string]domain.Ledger, id string) *domain.Ledger {
	if id == "" {
		return nil
	}
	if l, ok := ledgers[id]; ok {
		return &l
	}
	return nil
}

// mergePool pairs each customer with its ledger's signed balance. Among the merge
// participants a ledger is counted once: a secondary sharing a ledger with the primary or an
// earlier secondary contributes zero.
func mergePool(customers []domain.Customer, ledgers map[string]domain.Ledger, primaryID string, secondaryIDs []string) []domain.CustomerBalance {
	byID := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c
	}

	counted := map[string]bool{}
	balanceOf := func(c domain.Customer) decimal.Decimal {
		l, ok := ledgers[c.LedgerID]
		if !ok || counted[c.LedgerID] {
			return decimal.Zero
		}
		counted[c.LedgerID] = true
		return accounting.LedgerSignedBalance(l)
	}

	pool := make([]domain.CustomerBalance, 0, len(secondaryIDs)+1)
	seen := map[string]bool{}
	for _, id := range append([]string{primaryID}, secondaryIDs...) {
		c, ok := byID[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		pool = append(pool, domain.CustomerBalance{Customer: c, Balance: balanceOf(c)})
	}
	return pool
}

// mergeChanges translates a merge result into the writes that apply it.
func mergeChanges(result domain.MergeResult, customers []domain.Customer, mergeBalances bool, userID string) (portsrepo.MergeChanges, error) {
	byID := make(map[string]domain.Customer, len(customers))
	for _, c := range customers {
		byID[c.CustomerID] = c
	}
	primary := byID[result.PrimaryID]

	changes := portsrepo.MergeChanges{
		PrimaryID: result.PrimaryID,
		MergedIDs: result.MergedIDs,
		UserID:    userID,
		Entry:     result.AuditLog,
	}
	if !mergeBalances {
		return changes, nil
	}

	if !primary.HasLedger() {
		if !result.ConsolidatedBalance.IsZero() {
			return portsrepo.MergeChanges{}, apperrors.NewValidationError(
				"Primary record has no ledger to receive the consolidated balance; run ledger sync first")
		}
	} else {
		amount, balanceType := accounting.SplitSignedBalance(result.ConsolidatedBalance)
		changes.Balances = append(changes.Balances, portsrepo.LedgerBalance{
			LedgerID: primary.LedgerID, Amount: amount, BalanceType: balanceType,
		})
	}

	zeroed := map[string]bool{primary.LedgerID: true}
	for _, id := range result.MergedIDs {
		l := byID[id].LedgerID
		if l == "" || zeroed[l] {
			continue
		}
		zeroed[l] = true
		changes.Balances = append(changes.Balances, portsrepo.LedgerBalance{
			LedgerID: l, Amount: decimal.Zero, BalanceType: domain.BalanceDr,
		})
	}
	return changes, nil
}
