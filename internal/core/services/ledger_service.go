package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ledger_recon_app/internal/apperrors"
	"github.com/SscSPs/ledger_recon_app/internal/core/domain"
	"github.com/SscSPs/ledger_recon_app/internal/core/matching"
	portsrepo "github.com/SscSPs/ledger_recon_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_recon_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_recon_app/internal/dto"
	"github.com/SscSPs/ledger_recon_app/internal/utils/accounting"
	"github.com/SscSPs/ledger_recon_app/internal/utils/idgen"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	engine     *matching.Engine
	ids        idgen.Generator
	now        func() time.Time
}

// LedgerServiceOption is a functional option for configuring the ledger service
type LedgerServiceOption func(*ledgerService)

// WithLedgerEngine sets the engine used to generate ledger codes.
func WithLedgerEngine(engine *matching.Engine) LedgerServiceOption {
	return func(s *ledgerService) { s.engine = engine }
}

// WithLedgerIDs sets the ledger id source.
func WithLedgerIDs(ids idgen.Generator) LedgerServiceOption {
	return func(s *ledgerService) { s.ids = ids }
}

// WithLedgerClock sets the time source.
func WithLedgerClock(now func() time.Time) LedgerServiceOption {
	return func(s *ledgerService) { s.now = now }
}

// WithLedgerPermissions sets the permission service.
func WithLedgerPermissions(p portssvc.PermissionSvc) LedgerServiceOption {
	return func(s *ledgerService) { s.Permissions = p }
}

// NewLedgerService creates a new ledger service with the provided options
func NewLedgerService(repo portsrepo.LedgerRepositoryFacade, options ...LedgerServiceOption) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		ledgerRepo: repo,
		engine:     matching.NewEngine(),
		ids:        idgen.UUID(),
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) CreateLedger(ctx context.Context, session domain.SessionContext, req dto.CreateLedgerRequest) (*domain.Ledger, error) {
	if err := s.Authorize(ctx, session, domain.PermLedgersCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("Ledger Name is required")
	}
	if !req.Group.IsValid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("Unknown ledger group: %s", req.Group))
	}
	balanceType := req.BalanceType
	if balanceType == "" {
		balanceType = domain.BalanceDr
	}
	if err := accounting.ValidateOpeningBalance(req.OpeningBalance, balanceType); err != nil {
		return nil, apperrors.NewValidationError("Invalid opening balance: " + err.Error())
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		code = s.engine.GenerateLedgerCode(name)
	}

	ledger := domain.Ledger{
		LedgerID:       s.ids.NewID(),
		Name:           name,
		Code:           code,
		Group:          req.Group,
		OpeningBalance: req.OpeningBalance,
		BalanceType:    balanceType,
		GSTApplicable:  req.GSTApplicable,
		AuditFields:    domain.NewAuditFields(session.UserID, s.now()),
	}
	if req.Contact != nil {
		ledger.ContactMeta = &domain.ContactMeta{
			Email:   req.Contact.Email,
			Phone:   req.Contact.Phone,
			Address: req.Contact.Address,
			GSTIN:   req.Contact.GSTIN,
		}
	}

	if err := s.ledgerRepo.SaveLedger(ctx, ledger); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save ledger", slog.String("ledger_id", ledger.LedgerID))
		}
		return nil, fmt.Errorf("failed to save ledger: %w", err)
	}

	s.LogInfo(ctx, "Ledger created", slog.String("ledger_id", ledger.LedgerID), slog.String("code", ledger.Code))
	return &ledger, nil
}

func (s *ledgerService) GetLedger(ctx context.Context, session domain.SessionContext, ledgerID string) (*domain.Ledger, error) {
	if err := s.Authorize(ctx, session, domain.PermLedgersView); err != nil {
		return nil, err
	}
	ledger, err := s.ledgerRepo.FindLedgerByID(ctx, ledgerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find ledger", slog.String("ledger_id", ledgerID))
		}
		return nil, err
	}
	return ledger, nil
}

func (s *ledgerService) ListLedgers(ctx context.Context, session domain.SessionContext, params dto.ListLedgersParams) ([]domain.Ledger, error) {
	if err := s.Authorize(ctx, session, domain.PermLedgersView); err != nil {
		return nil, err
	}
	ledgers, err := s.ledgerRepo.ListLedgers(ctx, params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list ledgers", slog.Int("limit", params.Limit), slog.Int("offset", params.Offset))
		return nil, fmt.Errorf("failed to list ledgers: %w", err)
	}
	if ledgers == nil {
		return []domain.Ledger{}, nil
	}
	return ledgers, nil
}
