package services

import (
	portsrepo "github.com/amanahfin/waqf_ledger/internal/core/ports/repositories"
	portssvc "github.com/amanahfin/waqf_ledger/internal/core/ports/services"
	"github.com/amanahfin/waqf_ledger/pkg/config"
)

// NewServiceContainer wires all services against the repository provider.
func NewServiceContainer(repos portsrepo.RepositoryProvider, templates portssvc.TemplateProvider, notifier portssvc.Notifier, cfg *config.Config) portssvc.ServiceContainer {
	deductionSvc := NewDeductionService()
	allocationSvc := NewAllocationService(cfg.FallbackCharityBeneficiaryID)
	journalSvc := NewJournalService(templates, repos.AccountRepo, repos.JournalRepo)
	transferSvc := NewTransferService(repos.TransferRepo, cfg.IBANPrefix, cfg.IBANLength)
	distributionSvc := NewDistributionService(
		repos.DistributionRepo,
		repos.PeriodRepo,
		repos.BeneficiaryRepo,
		deductionSvc,
		allocationSvc,
		journalSvc,
		transferSvc,
		notifier,
	)
	closingSvc := NewClosingService(repos.PeriodRepo, repos.JournalRepo, notifier, cfg.CorpusAccountID)

	return portssvc.ServiceContainer{
		Distribution: distributionSvc,
		Closing:      closingSvc,
		Transfer:     transferSvc,
		Journal:      journalSvc,
		Account:      NewAccountService(repos.AccountRepo),
		Beneficiary:  NewBeneficiaryService(repos.BeneficiaryRepo),
	}
}
