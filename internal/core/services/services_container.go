package services

import (
	portsrepo "github.com/minibank/minibank/internal/core/ports/repositories"
	portssvc "github.com/minibank/minibank/internal/core/ports/services"
	"github.com/minibank/minibank/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Client = NewClientService(repos.ClientRepo)
	container.Token = NewTokenService(cfg)
	container.Ledger = NewLedgerService(repos.TransactionRepo, repos.ClientRepo)
	container.Admin = NewAdminService(repos.ClientRepo)

	return container
}

// Compile-time interface implementation checks
var (
	_ portssvc.ClientSvcFacade = (*clientService)(nil)
	_ portssvc.LedgerSvcFacade = (*ledgerService)(nil)
	_ portssvc.AdminSvcFacade  = (*adminService)(nil)
	_ portssvc.TokenSvcFacade  = (*tokenService)(nil)
)
