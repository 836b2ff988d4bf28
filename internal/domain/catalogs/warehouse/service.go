package warehouse

import (
	"context"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/pkg/logger"
)

// Service provides business logic for the Warehouse catalog.
type Service struct {
	*domain.CatalogService[*Warehouse]
	repo Repository
}

// NewService creates a new Warehouse service.
func NewService(repo Repository, txManager tx.Manager, log *logger.Logger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Warehouse]{
		Repo:       repo,
		TxManager:  txManager,
		Logger:     log,
		EntityName: "warehouse",
	})

	return &Service{
		CatalogService: base,
		repo:           repo,
	}
}

// GetDefaultForCompany returns the company's default warehouse. Claims
// cannot be created for a company without one.
func (s *Service) GetDefaultForCompany(ctx context.Context, companyID id.ID) (*Warehouse, error) {
	wh, err := s.repo.GetDefaultForCompany(ctx, companyID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewValidation("there is no warehouse for the current user's company").
				WithDetail("companyId", companyID.String())
		}
		return nil, err
	}
	return wh, nil
}
