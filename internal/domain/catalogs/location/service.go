package location

import (
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/pkg/logger"
)

// Service provides business logic for the StockLocation catalog.
type Service struct {
	*domain.CatalogService[*StockLocation]
	repo Repository
}

// NewService creates a new StockLocation service.
func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*StockLocation]{
		Repo:       repo,
		TxManager:  txManager,
		Logger:     log,
		EntityName: "stock_location",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}
