package product

import (
	"context"
	"fmt"
	"time"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/pkg/logger"
	"github.com/fevxie/rma/pkg/numerator"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	txManager tx.Manager
	numerator *numerator.Service
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service, log *logger.Logger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		Logger:     log,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		txManager:      txManager,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

// prepareForCreate generates a code when none was provided.
func (s *Service) prepareForCreate(ctx context.Context, p *Product) error {
	if p.Code == "" {
		cfg := numerator.DefaultConfig("PROD", "")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}
	p.SortSellers()
	return nil
}

// SetSellers replaces the supplier records of a product.
func (s *Service) SetSellers(ctx context.Context, productID id.ID, sellers []SupplierInfo) error {
	p, err := s.GetByID(ctx, productID)
	if err != nil {
		return err
	}

	p.Sellers = sellers
	p.SortSellers()
	for i := range p.Sellers {
		p.Sellers[i].ProductID = productID
		if id.IsNil(p.Sellers[i].ID) {
			p.Sellers[i].ID = id.New()
		}
	}
	if err := p.Validate(ctx); err != nil {
		return err
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.ReplaceSellers(ctx, productID, p.Sellers)
	})
}
