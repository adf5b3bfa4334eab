package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amanahfin/waqf_ledger/internal/apperrors"
	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

var (
	ErrEntryAmountNotPositive = errors.New("journal entry amount must be positive")
	ErrTemplateAccountMissing = errors.New("template references an unknown or inactive account")
	ErrTemplateSplitInvalid   = errors.New("template credit splits must sum to 100")
)

// journalService builds balanced journal entries from business events using
// externally configured templates.
type journalService struct {
	templates   portssvc.TemplateProvider
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalSvcFacade.
func NewJournalService(templates portssvc.TemplateProvider, accountRepo portsrepo.AccountRepositoryFacade, journalRepo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{
		templates:   templates,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// BuildEntry maps one money movement onto a balanced journal entry: one debit line
// against the template's debit account and one credit line per credit split, with
// the credit amounts allocated so their total equals the debit exactly.
func (s *journalService) BuildEntry(ctx context.Context, eventName string, fiscalPeriodID string, referenceType, referenceID string, amount domain.Money, entryDate time.Time, createdBy string) (*portssvc.BuiltEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.Amount <= 0 {
		return nil, fmt.Errorf("%w: event %s, amount %d", ErrEntryAmountNotPositive, eventName, amount.Amount)
	}

	template, err := s.templates.GetJournalTemplate(ctx, eventName)
	if err != nil {
		return nil, err
	}
	if len(template.Credits) == 0 {
		return nil, fmt.Errorf("%w: event %s has no credit splits", apperrors.ErrTemplateNotFound, eventName)
	}

	hundred := decimal.NewFromInt(100)
	splitSum := decimal.Zero
	for _, split := range template.Credits {
		splitSum = splitSum.Add(split.Percent)
	}
	if !splitSum.Equal(hundred) {
		return nil, fmt.Errorf("%w: event %s splits sum to %s", ErrTemplateSplitInvalid, eventName, splitSum.String())
	}

	if err := s.validateTemplateAccounts(ctx, template, amount.CurrencyCode); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{CreatedAt: now, CreatedBy: createdBy, LastUpdatedAt: now, LastUpdatedBy: createdBy}
	entry := domain.JournalEntry{
		JournalID:      uuid.NewString(),
		FiscalPeriodID: fiscalPeriodID,
		EntryDate:      entryDate,
		Description:    template.Description,
		CurrencyCode:   amount.CurrencyCode,
		ReferenceType:  referenceType,
		ReferenceID:    referenceID,
		Status:         domain.Posted,
		AuditFields:    audit,
	}

	lines := make([]domain.JournalLine, 0, 1+len(template.Credits))
	lines = append(lines, domain.JournalLine{
		LineID:      uuid.NewString(),
		JournalID:   entry.JournalID,
		AccountID:   template.DebitAccountID,
		Amount:      amount,
		Side:        domain.Debit,
		Notes:       eventName,
		AuditFields: audit,
	})

	weights := make([]decimal.Decimal, len(template.Credits))
	for i, split := range template.Credits {
		weights[i] = split.Percent
	}
	creditAmounts, err := amount.AllocateProportionally(weights)
	if err != nil {
		return nil, err
	}
	for i, split := range template.Credits {
		if creditAmounts[i].IsZero() {
			continue // a 0% split leg contributes nothing
		}
		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   entry.JournalID,
			AccountID:   split.AccountID,
			Amount:      creditAmounts[i],
			Side:        domain.Credit,
			Notes:       eventName,
			AuditFields: audit,
		})
	}

	if err := ValidateEntryBalance(lines); err != nil {
		// Should never fire: credits are allocated from the debit amount. Logged
		// with the full input so the computation can be reproduced offline.
		logger.Error("Built journal entry is unbalanced",
			slog.String("event", eventName),
			slog.String("reference_id", referenceID),
			slog.Int64("amount", amount.Amount),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	return &portssvc.BuiltEntry{Entry: entry, Lines: lines}, nil
}

// RecordEvent builds and immediately persists the entry for a standalone business
// event, such as a rental payment landing in the bank account.
func (s *journalService) RecordEvent(ctx context.Context, eventName string, fiscalPeriodID string, referenceType, referenceID string, amount domain.Money, entryDate time.Time, createdBy string) (*portssvc.BuiltEntry, error) {
	built, err := s.BuildEntry(ctx, eventName, fiscalPeriodID, referenceType, referenceID, amount, entryDate, createdBy)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.SaveEntry(ctx, built.Entry, built.Lines); err != nil {
		return nil, err
	}
	return built, nil
}

// GetEntriesByReference retrieves the posted entries grouped under one reference.
func (s *journalService) GetEntriesByReference(ctx context.Context, referenceType, referenceID string) ([]domain.JournalEntry, map[string][]domain.JournalLine, error) {
	return s.journalRepo.FindEntriesByReference(ctx, referenceType, referenceID)
}

// validateTemplateAccounts checks that every account the template references
// exists, is active, and matches the entry currency.
func (s *journalService) validateTemplateAccounts(ctx context.Context, template *domain.JournalTemplate, currencyCode string) error {
	ids := make([]string, 0, 1+len(template.Credits))
	ids = append(ids, template.DebitAccountID)
	for _, split := range template.Credits {
		ids = append(ids, split.AccountID)
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch template accounts: %w", err)
	}
	for _, id := range ids {
		acc, found := accounts[id]
		if !found {
			return fmt.Errorf("%w: account %s", ErrTemplateAccountMissing, id)
		}
		if !acc.IsActive {
			return fmt.Errorf("%w: account %s is inactive", ErrTemplateAccountMissing, id)
		}
		if acc.CurrencyCode != currencyCode {
			return fmt.Errorf("%w: account %s currency %s does not match entry currency %s", apperrors.ErrValidation, id, acc.CurrencyCode, currencyCode)
		}
	}
	return nil
}

// ValidateEntryBalance checks the double-entry invariant for a set of journal
// lines: every amount positive, and the debit total exactly equal to the credit
// total. Exported so the repository layer can re-check before persistence.
func ValidateEntryBalance(lines []domain.JournalLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: entry has fewer than two lines", apperrors.ErrUnbalancedEntry)
	}
	debits := int64(0)
	credits := int64(0)
	for _, line := range lines {
		if line.Amount.Amount <= 0 {
			return fmt.Errorf("%w: line %s has non-positive amount %d", apperrors.ErrUnbalancedEntry, line.LineID, line.Amount.Amount)
		}
		switch line.Side {
		case domain.Debit:
			debits += line.Amount.Amount
		case domain.Credit:
			credits += line.Amount.Amount
		default:
			return fmt.Errorf("%w: line %s has unknown side %q", apperrors.ErrUnbalancedEntry, line.LineID, line.Side)
		}
	}
	if debits != credits {
		return fmt.Errorf("%w: debits %d, credits %d", apperrors.ErrUnbalancedEntry, debits, credits)
	}
	return nil
}
