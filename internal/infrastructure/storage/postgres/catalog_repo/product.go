package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const (
	productTable         = "cat_products"
	productSupplierTable = "cat_product_suppliers"
)

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

// NewProductRepo creates a new product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo[*product.Product](
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.Product](),
			func() *product.Product { return &product.Product{} },
		),
	}
}

// GetByID retrieves a product with its supplier records.
func (r *ProductRepo) GetByID(ctx context.Context, productID id.ID) (*product.Product, error) {
	p, err := r.BaseCatalogRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := r.loadSellers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByCode retrieves a product by code with its supplier records.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*product.Product, error) {
	p, err := r.BaseCatalogRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := r.loadSellers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindBySKU retrieves a product by its internal reference.
func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*product.Product, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"default_code": sku}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	p, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	if err := r.loadSellers(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ReplaceSellers rewrites the supplier records of a product.
// Call inside a transaction.
func (r *ProductRepo) ReplaceSellers(ctx context.Context, productID id.ID, sellers []product.SupplierInfo) error {
	querier := r.Querier(ctx)

	delSQL, delArgs, err := r.Builder().
		Delete(productSupplierTable).
		Where(squirrel.Eq{"product_id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete sellers: %w", err)
	}
	if _, err := querier.Exec(ctx, delSQL, delArgs...); err != nil {
		return fmt.Errorf("delete sellers: %w", err)
	}

	if len(sellers) == 0 {
		return nil
	}

	ins := r.Builder().
		Insert(productSupplierTable).
		Columns("id", "product_id", "partner_id", "sequence", "warranty_months",
			"return_partner_kind", "return_address_id", "stock_location_id")
	for _, s := range sellers {
		ins = ins.Values(s.ID, productID, s.PartnerID, s.Sequence, s.WarrantyMonths,
			s.ReturnPartnerKind, s.ReturnAddressID, s.StockLocationID)
	}

	insSQL, insArgs, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert sellers: %w", err)
	}
	if _, err := querier.Exec(ctx, insSQL, insArgs...); err != nil {
		return fmt.Errorf("insert sellers: %w", err)
	}

	return nil
}

func (r *ProductRepo) loadSellers(ctx context.Context, p *product.Product) error {
	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[product.SupplierInfo]()...).
		From(productSupplierTable).
		Where(squirrel.Eq{"product_id": p.ID}).
		OrderBy("sequence ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("build sellers query: %w", err)
	}

	var sellers []product.SupplierInfo
	if err := pgxscan.Select(ctx, r.Querier(ctx), &sellers, sql, args...); err != nil {
		return fmt.Errorf("load sellers: %w", err)
	}
	p.Sellers = sellers
	return nil
}
