package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	accountRepo := newPgxAccountRepository(dbPool)
	beneficiaryRepo := newPgxBeneficiaryRepository(dbPool)
	journalRepo := newPgxJournalRepository(dbPool)
	transferRepo := newPgxTransferRepository(dbPool)
	distributionRepo := newPgxDistributionRepository(dbPool, journalRepo, transferRepo)
	periodRepo := newPgxFiscalPeriodRepository(dbPool, journalRepo)

	return portsrepo.RepositoryProvider{
		AccountRepo:      accountRepo,
		BeneficiaryRepo:  beneficiaryRepo,
		DistributionRepo: distributionRepo,
		JournalRepo:      journalRepo,
		PeriodRepo:       periodRepo,
		TransferRepo:     transferRepo,
	}
}
