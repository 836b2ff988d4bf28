package company

import (
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/pkg/logger"
)

// Service provides business logic for the Company catalog. Companies are
// created by operators with explicit codes, so no numbering hook here.
type Service struct {
	*domain.CatalogService[*Company]
	repo Repository
}

// NewService creates a new Company service.
func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Company]{
		Repo:       repo,
		TxManager:  txManager,
		Logger:     log,
		EntityName: "company",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
