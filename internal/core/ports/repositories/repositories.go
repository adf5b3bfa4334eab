package repositories

// RepositoryProvider bundles all repository facades for dependency injection into
// the service container.
type RepositoryProvider struct {
	AccountRepo      AccountRepositoryFacade
	BeneficiaryRepo  BeneficiaryRepositoryFacade
	DistributionRepo DistributionRepositoryFacade
	JournalRepo      JournalRepositoryFacade
	PeriodRepo       FiscalPeriodRepositoryFacade
	TransferRepo     TransferRepositoryFacade
}
