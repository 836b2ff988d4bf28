package partner

import (
	"context"
	"fmt"
	"time"

	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/pkg/logger"
	"github.com/fevxie/rma/pkg/numerator"
)

// Service provides business logic for the Partner catalog.
type Service struct {
	*domain.CatalogService[*Partner]
	repo      Repository
	numerator *numerator.Service
}

// NewService creates a new Partner service.
func NewService(repo Repository, txManager tx.Manager, num *numerator.Service, log *logger.Logger) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Partner]{
		Repo:       repo,
		TxManager:  txManager,
		Logger:     log,
		EntityName: "partner",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      num,
	}

	base.Hooks().On(domain.BeforeCreate, svc.prepareForCreate)

	return svc
}

func (s *Service) prepareForCreate(ctx context.Context, p *Partner) error {
	if p.Code == "" {
		cfg := numerator.DefaultConfig("PART", "")
		code, err := s.numerator.GetNextNumber(ctx, cfg, nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		p.Code = code
	}
	return nil
}
