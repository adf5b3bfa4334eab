package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amanahfin/waqf_ledger/internal/core/domain"
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/internal/middleware"
)

// transferService converts executed per-beneficiary payments into a bank transfer
// settlement batch.
type transferService struct {
	transferRepo portsrepo.TransferRepositoryFacade
	ibanPrefix   string // country-code prefix, e.g. "SA"
	ibanLength   int    // fixed total length, e.g. 24 for Saudi IBANs
}

// NewTransferService creates a new TransferSvcFacade.
func NewTransferService(transferRepo portsrepo.TransferRepositoryFacade, ibanPrefix string, ibanLength int) portssvc.TransferSvcFacade {
	return &transferService{
		transferRepo: transferRepo,
		ibanPrefix:   ibanPrefix,
		ibanLength:   ibanLength,
	}
}

var _ portssvc.TransferSvcFacade = (*transferService)(nil)

// BuildBatch assembles the settlement batch for an executed distribution. A
// beneficiary with a missing or invalid bank identifier is excluded with an
// excluded_no_bank_details warning rather than aborting the batch. Batch totals
// are recomputed from the included lines only.
func (s *transferService) BuildBatch(ctx context.Context, distribution domain.DistributionRequest, lines []domain.AllocationLine, roster map[string]domain.BeneficiaryShare, createdBy string) (*portssvc.BuiltBatch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now().UTC()
	batch := domain.TransferBatch{
		BatchID:        uuid.NewString(),
		DistributionID: distribution.DistributionID,
		TotalAmount:    domain.NewMoney(0, distribution.GrossAmount.CurrencyCode),
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: createdBy, LastUpdatedAt: now, LastUpdatedBy: createdBy},
	}

	built := &portssvc.BuiltBatch{Batch: batch}
	seq := 0
	for _, line := range lines {
		if line.Amount.IsZero() {
			continue // zero-amount allocations settle nothing
		}

		iban := ""
		if b, found := roster[line.BeneficiaryID]; found {
			iban = strings.ToUpper(strings.TrimSpace(b.BankIdentifier))
		}
		if err := s.validateIBAN(iban); err != nil {
			logger.Warn("Beneficiary excluded from transfer batch",
				slog.String("beneficiary_id", line.BeneficiaryID),
				slog.String("distribution_id", distribution.DistributionID),
				slog.String("reason", err.Error()),
			)
			built.Warnings = append(built.Warnings, domain.TransferWarning{
				BatchID:       built.Batch.BatchID,
				BeneficiaryID: line.BeneficiaryID,
				Reason:        domain.WarningNoBankDetails,
			})
			continue
		}

		seq++
		built.Lines = append(built.Lines, domain.TransferLine{
			LineID:        uuid.NewString(),
			BatchID:       built.Batch.BatchID,
			BeneficiaryID: line.BeneficiaryID,
			IBAN:          iban,
			Amount:        line.Amount,
			Reference:     fmt.Sprintf("WAQF-%.8s-%03d", distribution.DistributionID, seq),
		})
		built.Batch.TotalAmount.Amount += line.Amount.Amount
	}
	built.Batch.TotalCount = len(built.Lines)

	return built, nil
}

// GetBatchByDistribution retrieves the persisted batch for a distribution.
func (s *transferService) GetBatchByDistribution(ctx context.Context, distributionID string) (*domain.TransferBatch, []domain.TransferLine, []domain.TransferWarning, error) {
	return s.transferRepo.FindBatchByDistributionID(ctx, distributionID)
}

// validateIBAN checks prefix and fixed total length only; full checksum validation
// belongs to the bank integration downstream.
func (s *transferService) validateIBAN(iban string) error {
	if iban == "" {
		return fmt.Errorf("bank identifier missing")
	}
	if len(iban) != s.ibanLength {
		return fmt.Errorf("bank identifier length %d, want %d", len(iban), s.ibanLength)
	}
	if !strings.HasPrefix(iban, s.ibanPrefix) {
		return fmt.Errorf("bank identifier must start with %s", s.ibanPrefix)
	}
	for _, r := range iban {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') {
			return fmt.Errorf("bank identifier contains invalid character %q", r)
		}
	}
	return nil
}
