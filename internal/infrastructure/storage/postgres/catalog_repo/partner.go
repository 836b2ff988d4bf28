package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/domain/catalogs/partner"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const partnerTable = "cat_partners"

// PartnerRepo implements partner.Repository.
type PartnerRepo struct {
	*BaseCatalogRepo[*partner.Partner]
}

// NewPartnerRepo creates a new partner repository.
func NewPartnerRepo(txManager *postgres.TxManager) *PartnerRepo {
	return &PartnerRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*partner.Partner](
			txManager,
			partnerTable,
			postgres.ExtractDBColumns[partner.Partner](),
			func() *partner.Partner { return &partner.Partner{} },
		),
	}
}

// FindByEmail retrieves a partner by email address.
func (r *PartnerRepo) FindByEmail(ctx context.Context, email string) (*partner.Partner, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"email": email}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("partner", email)
		}
		return nil, err
	}
	return p, nil
}
