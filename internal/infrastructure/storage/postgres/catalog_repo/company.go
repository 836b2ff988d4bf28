package catalog_repo

import (
	"github.com/fevxie/rma/internal/domain/catalogs/company"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const companyTable = "cat_companies"

// CompanyRepo implements company.Repository.
type CompanyRepo struct {
	*BaseCatalogRepo[*company.Company]
}

// NewCompanyRepo creates a new company repository.
func NewCompanyRepo(txManager *postgres.TxManager) *CompanyRepo {
	return &CompanyRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*company.Company](
			txManager,
			companyTable,
			postgres.ExtractDBColumns[company.Company](),
			func() *company.Company { return &company.Company{} },
		),
	}
}
