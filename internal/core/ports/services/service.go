package services

// ServiceContainer bundles all service facades for dependency injection into the
// HTTP layer.
type ServiceContainer struct {
	Distribution DistributionSvcFacade
	Closing      ClosingSvcFacade
	Transfer     TransferSvcFacade
	Journal      JournalSvcFacade
	Account      AccountSvcFacade
	Beneficiary  BeneficiarySvcFacade
}
