package claims

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/types"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/catalogs/company"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/domain/invoicing"
	"github.com/fevxie/rma/internal/domain/warranty"
	"github.com/fevxie/rma/pkg/numerator"
)

// --- in-memory fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	claims map[id.ID]*Claim
	lines  map[id.ID][]ClaimLine
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{claims: map[id.ID]*Claim{}, lines: map[id.ID][]ClaimLine{}}
}

func (r *fakeRepo) Create(_ context.Context, c *Claim) error {
	cp := *c
	r.claims[c.ID] = &cp
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, claimID id.ID) (*Claim, error) {
	c, ok := r.claims[claimID]
	if !ok {
		return nil, apperror.NewNotFound("claim", claimID.String())
	}
	cp := *c
	return &cp, nil
}

func (r *fakeRepo) GetByNumber(_ context.Context, number string) (*Claim, error) {
	for _, c := range r.claims {
		if c.Number == number {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("claim", number)
}

func (r *fakeRepo) Update(_ context.Context, c *Claim) error {
	cp := *c
	r.claims[c.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, claimID id.ID) error {
	delete(r.claims, claimID)
	return nil
}

func (r *fakeRepo) GetLines(_ context.Context, claimID id.ID) ([]ClaimLine, error) {
	return append([]ClaimLine(nil), r.lines[claimID]...), nil
}

func (r *fakeRepo) SaveLines(_ context.Context, claimID id.ID, lines []ClaimLine) error {
	r.lines[claimID] = append([]ClaimLine(nil), lines...)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Claim], error) {
	out := domain.ListResult[*Claim]{}
	for _, c := range r.claims {
		out.Items = append(out.Items, c)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

type fakeInvoices struct {
	invoices map[id.ID]*invoicing.Invoice
	lines    map[id.ID][]invoicing.InvoiceLine
}

func (f *fakeInvoices) GetByID(_ context.Context, invID id.ID) (*invoicing.Invoice, error) {
	inv, ok := f.invoices[invID]
	if !ok {
		return nil, apperror.NewNotFound("invoice", invID.String())
	}
	return inv, nil
}

func (f *fakeInvoices) GetLine(_ context.Context, lineID id.ID) (*invoicing.InvoiceLine, error) {
	for _, ls := range f.lines {
		for i := range ls {
			if ls[i].ID == lineID {
				return &ls[i], nil
			}
		}
	}
	return nil, apperror.NewNotFound("invoice_line", lineID.String())
}

func (f *fakeInvoices) ListLines(_ context.Context, invID id.ID) ([]invoicing.InvoiceLine, error) {
	return f.lines[invID], nil
}

type fakeProducts struct{ products map[id.ID]*product.Product }

func (f *fakeProducts) GetByID(_ context.Context, pid id.ID) (*product.Product, error) {
	p, ok := f.products[pid]
	if !ok {
		return nil, apperror.NewNotFound("product", pid.String())
	}
	return p, nil
}

type fakeCompanies struct{ companies map[id.ID]*company.Company }

func (f *fakeCompanies) GetByID(_ context.Context, cid id.ID) (*company.Company, error) {
	c, ok := f.companies[cid]
	if !ok {
		return nil, apperror.NewNotFound("company", cid.String())
	}
	return c, nil
}

type fakeWarehouses struct{ warehouses map[id.ID]*warehouse.Warehouse }

func (f *fakeWarehouses) GetByID(_ context.Context, wid id.ID) (*warehouse.Warehouse, error) {
	w, ok := f.warehouses[wid]
	if !ok {
		return nil, apperror.NewNotFound("warehouse", wid.String())
	}
	return w, nil
}

func (f *fakeWarehouses) GetDefaultForCompany(_ context.Context, cid id.ID) (*warehouse.Warehouse, error) {
	for _, w := range f.warehouses {
		if w.CompanyID == cid && w.IsActive {
			return w, nil
		}
	}
	return nil, apperror.NewNotFound("warehouse", cid.String())
}

type seqRow struct{ val int64 }

func (r *seqRow) Scan(dest ...any) error {
	if len(dest) > 0 {
		if p, ok := dest[0].(*int64); ok {
			*p = r.val
		}
	}
	return nil
}

// upsertQuerier simulates the sys_sequences upsert keyed by the first arg.
type upsertQuerier struct{ vals map[string]int64 }

func (q *upsertQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	key, _ := args[0].(string)
	q.vals[key]++
	return &seqRow{val: q.vals[key]}
}

// --- fixture ---

type fixture struct {
	svc        *Service
	repo       *fakeRepo
	invoices   *fakeInvoices
	products   *fakeProducts
	companies  *fakeCompanies
	warehouses *fakeWarehouses

	companyID   id.ID
	warehouseID id.ID
	productID   id.ID
	invoiceID   id.ID
	invLineID   id.ID
	sellerAddr  id.ID
	sellerLoc   id.ID
	whLoc       id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:       newFakeRepo(),
		invoices:   &fakeInvoices{invoices: map[id.ID]*invoicing.Invoice{}, lines: map[id.ID][]invoicing.InvoiceLine{}},
		products:   &fakeProducts{products: map[id.ID]*product.Product{}},
		companies:  &fakeCompanies{companies: map[id.ID]*company.Company{}},
		warehouses: &fakeWarehouses{warehouses: map[id.ID]*warehouse.Warehouse{}},
	}

	comp := company.NewCompany("MAIN", "Main Co", id.New())
	f.companies.companies[comp.ID] = comp
	f.companyID = comp.ID

	f.whLoc = id.New()
	wh := warehouse.NewWarehouse("WH1", "Main Warehouse", comp.ID, f.whLoc)
	f.warehouses.warehouses[wh.ID] = wh
	f.warehouseID = wh.ID

	f.sellerAddr = id.New()
	f.sellerLoc = id.New()
	prod := product.NewProduct("P1", "Widget", 12)
	prod.Sellers = []product.SupplierInfo{{
		ID:                id.New(),
		ProductID:         prod.ID,
		PartnerID:         id.New(),
		Sequence:          1,
		WarrantyMonths:    6,
		ReturnPartnerKind: warranty.ReturnToSupplier,
		ReturnAddressID:   f.sellerAddr,
		StockLocationID:   f.sellerLoc,
	}}
	f.products.products[prod.ID] = prod
	f.productID = prod.ID

	invDate := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	inv := &invoicing.Invoice{ID: id.New(), Number: "INV-1", PartnerID: id.New(), Date: &invDate}
	f.invoices.invoices[inv.ID] = inv
	f.invoiceID = inv.ID

	il := invoicing.InvoiceLine{
		ID:          id.New(),
		InvoiceID:   inv.ID,
		ProductID:   prod.ID,
		Description: "Widget",
		Quantity:    types.NewQuantityFromFloat64(2),
		UnitPrice:   decimal.RequireFromString("10.00"),
	}
	f.invoices.lines[inv.ID] = []invoicing.InvoiceLine{il}
	f.invLineID = il.ID

	f.svc = NewService(ServiceConfig{
		Repo:       f.repo,
		Invoices:   f.invoices,
		Products:   f.products,
		Companies:  f.companies,
		Warehouses: f.warehouses,
		Numerator:  numerator.New(&upsertQuerier{vals: map[string]int64{}}),
		TxManager:  fakeTxManager{},
	})
	return f
}

func (f *fixture) newClaim(t *testing.T) *Claim {
	t.Helper()
	claim := NewClaim(f.companyID, TypeCustomer, "does not power on")
	claim.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	claim.InvoiceID = f.invoiceID
	claim.WarehouseID = f.warehouseID
	line := NewClaimLine(claim.ID, f.productID, types.NewQuantityFromFloat64(1))
	line.InvoiceLineID = f.invLineID
	line.UnitSalePrice = decimal.RequireFromString("10.00")
	claim.Lines = append(claim.Lines, line)
	require.NoError(t, f.svc.Create(context.Background(), claim))
	return claim
}

func TestService_Create_AssignsCompanyScopedNumber(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)

	assert.Equal(t, "RMA-MAIN-2026-00001", claim.Number)

	second := f.newClaim(t)
	assert.Equal(t, "RMA-MAIN-2026-00002", second.Number)
}

func TestService_Create_DefaultsWarehouse(t *testing.T) {
	f := newFixture(t)
	claim := NewClaim(f.companyID, TypeCustomer, "case cracked")
	claim.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	line := NewClaimLine(claim.ID, f.productID, types.NewQuantityFromFloat64(1))
	claim.Lines = append(claim.Lines, line)

	require.NoError(t, f.svc.Create(context.Background(), claim))
	assert.Equal(t, f.warehouseID, claim.WarehouseID)
}

func TestService_SetWarranty_Strict(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)

	got, err := f.svc.SetWarranty(context.Background(), claim.ID, nil)
	require.NoError(t, err)

	line := got.Lines[0]
	require.NotNil(t, line.GuaranteeLimit)
	// Company guarantee by default: 12 months from 2026-01-15
	assert.Equal(t, time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC), *line.GuaranteeLimit)
	assert.Equal(t, warranty.StatusValid, line.WarrantyStatus)
	// Routing follows the first seller
	assert.Equal(t, warranty.ReturnToSupplier, line.ReturnPartnerKind)
	assert.Equal(t, f.sellerAddr, line.ReturnPartnerID)
	assert.Equal(t, f.sellerLoc, line.DestinationLocationID)
}

func TestService_SetWarranty_MissingProductOrInvoice(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)
	claim.Lines[0].InvoiceLineID = id.Nil()
	require.NoError(t, f.repo.SaveLines(context.Background(), claim.ID, claim.Lines))

	_, err := f.svc.SetWarranty(context.Background(), claim.ID, nil)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeMissingRequiredField))
}

func TestService_SetWarranty_InvoiceWithoutDate(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)
	f.invoices.invoices[f.invoiceID].Date = nil

	_, err := f.svc.SetWarranty(context.Background(), claim.ID, nil)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvoiceNoDate))
}

func TestService_RefreshWarranty_LenientBlanksWarrantyKeepsRouting(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)
	f.invoices.invoices[f.invoiceID].Date = nil

	got, err := f.svc.RefreshWarranty(context.Background(), claim.ID)
	require.NoError(t, err)

	line := got.Lines[0]
	assert.Nil(t, line.GuaranteeLimit)
	assert.Empty(t, line.WarrantyStatus)
	// Routing still resolved from the seller
	assert.Equal(t, warranty.ReturnToSupplier, line.ReturnPartnerKind)
	assert.Equal(t, f.sellerAddr, line.ReturnPartnerID)
}

func TestService_RefreshWarranty_MissingInputsBlankEverything(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)
	claim.Lines[0].InvoiceLineID = id.Nil()
	require.NoError(t, f.repo.SaveLines(context.Background(), claim.ID, claim.Lines))

	got, err := f.svc.RefreshWarranty(context.Background(), claim.ID)
	require.NoError(t, err)

	line := got.Lines[0]
	assert.Nil(t, line.GuaranteeLimit)
	assert.Empty(t, line.WarrantyStatus)
	assert.Empty(t, line.ReturnPartnerKind)
	assert.True(t, id.IsNil(line.ReturnPartnerID))
	assert.True(t, id.IsNil(line.DestinationLocationID))
}

func TestService_SetWarranty_SupplierGuaranteeNoSeller(t *testing.T) {
	f := newFixture(t)
	f.products.products[f.productID].Sellers = nil
	claim := f.newClaim(t)
	claim.Lines[0].ApplicableGuarantee = warranty.GuaranteeSupplier
	require.NoError(t, f.repo.SaveLines(context.Background(), claim.ID, claim.Lines))

	_, err := f.svc.SetWarranty(context.Background(), claim.ID, nil)
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeProductNoSupplier))
}

func TestService_AutoSetWarranty_OnlyTouchesUndecidedLines(t *testing.T) {
	f := newFixture(t)
	claim := f.newClaim(t)

	// Decide the first line, then add an undecided second line.
	_, err := f.svc.SetWarranty(context.Background(), claim.ID, nil)
	require.NoError(t, err)

	claim, err = f.svc.GetByID(context.Background(), claim.ID)
	require.NoError(t, err)
	extra := NewClaimLine(claim.ID, f.productID, types.NewQuantityFromFloat64(1))
	extra.InvoiceLineID = f.invLineID
	claim.Lines = append(claim.Lines, extra)
	require.NoError(t, f.repo.SaveLines(context.Background(), claim.ID, claim.Lines))

	require.NoError(t, f.svc.AutoSetWarranty(context.Background(), claim))
	for _, l := range claim.Lines {
		assert.NotEmpty(t, l.WarrantyStatus)
	}
}

func TestService_BuildLinesFromInvoice(t *testing.T) {
	f := newFixture(t)
	claim := NewClaim(f.companyID, TypeCustomer, "whole order defective")
	claim.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	claim.InvoiceID = f.invoiceID
	claim.WarehouseID = f.warehouseID
	line := NewClaimLine(claim.ID, f.productID, types.NewQuantityFromFloat64(1))
	claim.Lines = append(claim.Lines, line)
	require.NoError(t, f.svc.Create(context.Background(), claim))

	got, err := f.svc.BuildLinesFromInvoice(context.Background(), claim.ID)
	require.NoError(t, err)

	require.Len(t, got.Lines, 1)
	l := got.Lines[0]
	assert.Equal(t, f.productID, l.ProductID)
	assert.Equal(t, f.invLineID, l.InvoiceLineID)
	assert.Equal(t, types.NewQuantityFromFloat64(2), l.Quantity)
	assert.True(t, l.UnitSalePrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, StateDraft, l.State)
	// Lenient prefill computed the warranty
	assert.Equal(t, warranty.StatusValid, l.WarrantyStatus)
	// Delivery address defaulted to the invoice partner
	assert.Equal(t, f.invoices.invoices[f.invoiceID].PartnerID, got.DeliveryAddressID)
}
