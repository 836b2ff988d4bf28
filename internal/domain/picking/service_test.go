package picking

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
	"github.com/fevxie/rma/internal/domain/catalogs/partner"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/domain/warranty"
	"github.com/fevxie/rma/pkg/numerator"
)

// --- fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakePickRepo struct {
	pickings map[id.ID]*Picking
	moves    map[id.ID][]StockMove
}

func newFakePickRepo() *fakePickRepo {
	return &fakePickRepo{pickings: map[id.ID]*Picking{}, moves: map[id.ID][]StockMove{}}
}

func (r *fakePickRepo) Create(_ context.Context, p *Picking) error {
	cp := *p
	r.pickings[p.ID] = &cp
	return nil
}

func (r *fakePickRepo) GetByID(_ context.Context, pid id.ID) (*Picking, error) {
	p, ok := r.pickings[pid]
	if !ok {
		return nil, apperror.NewNotFound("picking", pid.String())
	}
	cp := *p
	return &cp, nil
}

func (r *fakePickRepo) Update(_ context.Context, p *Picking) error {
	cp := *p
	r.pickings[p.ID] = &cp
	return nil
}

func (r *fakePickRepo) GetMoves(_ context.Context, pid id.ID) ([]StockMove, error) {
	return append([]StockMove(nil), r.moves[pid]...), nil
}

func (r *fakePickRepo) SaveMoves(_ context.Context, pid id.ID, moves []StockMove) error {
	r.moves[pid] = append([]StockMove(nil), moves...)
	return nil
}

func (r *fakePickRepo) GetMoveByID(_ context.Context, moveID id.ID) (*StockMove, error) {
	for _, ms := range r.moves {
		for i := range ms {
			if ms[i].MoveID == moveID {
				return &ms[i], nil
			}
		}
	}
	return nil, apperror.NewNotFound("stock_move", moveID.String())
}

func (r *fakePickRepo) List(_ context.Context, _ ListFilter) (domain.ListResult[*Picking], error) {
	out := domain.ListResult[*Picking]{}
	for _, p := range r.pickings {
		out.Items = append(out.Items, p)
	}
	out.TotalCount = int64(len(out.Items))
	return out, nil
}

// fakeClaimStore backs both the ClaimProvider and the claims.Repository
// sides the picking service needs.
type fakeClaimStore struct {
	claims map[id.ID]*claims.Claim
}

func (f *fakeClaimStore) GetByID(_ context.Context, cid id.ID) (*claims.Claim, error) {
	c, ok := f.claims[cid]
	if !ok {
		return nil, apperror.NewNotFound("claim", cid.String())
	}
	cp := *c
	cp.Lines = append([]claims.ClaimLine(nil), c.Lines...)
	return &cp, nil
}

func (f *fakeClaimStore) AutoSetWarranty(_ context.Context, c *claims.Claim) error {
	// Lines in these tests are prepared with warranty already decided
	return nil
}

func (f *fakeClaimStore) Create(_ context.Context, c *claims.Claim) error {
	f.claims[c.ID] = c
	return nil
}

func (f *fakeClaimStore) GetByNumber(_ context.Context, number string) (*claims.Claim, error) {
	return nil, apperror.NewNotFound("claim", number)
}

func (f *fakeClaimStore) Update(_ context.Context, c *claims.Claim) error {
	f.claims[c.ID] = c
	return nil
}

func (f *fakeClaimStore) Delete(_ context.Context, cid id.ID) error {
	delete(f.claims, cid)
	return nil
}

func (f *fakeClaimStore) GetLines(_ context.Context, cid id.ID) ([]claims.ClaimLine, error) {
	c, ok := f.claims[cid]
	if !ok {
		return nil, apperror.NewNotFound("claim", cid.String())
	}
	return c.Lines, nil
}

func (f *fakeClaimStore) SaveLines(_ context.Context, cid id.ID, lines []claims.ClaimLine) error {
	c, ok := f.claims[cid]
	if !ok {
		return apperror.NewNotFound("claim", cid.String())
	}
	c.Lines = append([]claims.ClaimLine(nil), lines...)
	return nil
}

func (f *fakeClaimStore) List(_ context.Context, _ claims.ListFilter) (domain.ListResult[*claims.Claim], error) {
	return domain.ListResult[*claims.Claim]{}, nil
}

type fakeCompanies struct{ companies map[id.ID]*company.Company }

func (f *fakeCompanies) GetByID(_ context.Context, cid id.ID) (*company.Company, error) {
	c, ok := f.companies[cid]
	if !ok {
		return nil, apperror.NewNotFound("company", cid.String())
	}
	return c, nil
}

type fakePartners struct{ partners map[id.ID]*partner.Partner }

func (f *fakePartners) GetByID(_ context.Context, pid id.ID) (*partner.Partner, error) {
	p, ok := f.partners[pid]
	if !ok {
		return nil, apperror.NewNotFound("partner", pid.String())
	}
	return p, nil
}

type fakeWarehouses struct{ warehouses map[id.ID]*warehouse.Warehouse }

func (f *fakeWarehouses) GetByID(_ context.Context, wid id.ID) (*warehouse.Warehouse, error) {
	w, ok := f.warehouses[wid]
	if !ok {
		return nil, apperror.NewNotFound("warehouse", wid.String())
	}
	return w, nil
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

type upsertQuerier struct{ vals map[string]int64 }

func (q *upsertQuerier) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	key, _ := args[0].(string)
	var incr int64 = 1
	if len(args) > 1 {
		if v, ok := args[1].(int64); ok {
			incr = v
		}
	}
	q.vals[key] += incr
	return &seqRow{val: q.vals[key]}
}

// --- fixture ---

type fixture struct {
	svc    *Service
	repo   *fakePickRepo
	claims *fakeClaimStore

	claimID     id.ID
	companyID   id.ID
	warehouseID id.ID
	whLoc       id.ID
	destLoc     id.ID
	retPartner  id.ID
	custLoc     id.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:   newFakePickRepo(),
		claims: &fakeClaimStore{claims: map[id.ID]*claims.Claim{}},
	}

	companies := &fakeCompanies{companies: map[id.ID]*company.Company{}}
	partners := &fakePartners{partners: map[id.ID]*partner.Partner{}}
	warehouses := &fakeWarehouses{warehouses: map[id.ID]*warehouse.Warehouse{}}

	comp := company.NewCompany("MAIN", "Main Co", id.New())
	companies.companies[comp.ID] = comp
	f.companyID = comp.ID

	f.whLoc = id.New()
	wh := warehouse.NewWarehouse("WH1", "Main Warehouse", comp.ID, f.whLoc)
	warehouses.warehouses[wh.ID] = wh
	f.warehouseID = wh.ID

	f.custLoc = id.New()
	ret := partner.NewPartner("SUP1", "Supplier One", partner.TypeSupplier)
	ret.CustomerLocationID = f.custLoc
	partners.partners[ret.ID] = ret
	f.retPartner = ret.ID

	f.destLoc = id.New()

	claim := claims.NewClaim(comp.ID, claims.TypeCustomer, "batch return")
	claim.Date = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	claim.WarehouseID = wh.ID
	claim.DeliveryAddressID = ret.ID
	for i := 0; i < 2; i++ {
		line := claims.NewClaimLine(claim.ID, id.New(), types.NewQuantityFromFloat64(1))
		line.UnitSalePrice = decimal.RequireFromString("25.00")
		line.WarrantyStatus = warranty.StatusValid
		line.ReturnPartnerKind = warranty.ReturnToSupplier
		line.ReturnPartnerID = f.retPartner
		line.DestinationLocationID = f.destLoc
		claim.Lines = append(claim.Lines, line)
	}
	f.claims.claims[claim.ID] = claim
	f.claimID = claim.ID

	f.svc = NewService(ServiceConfig{
		Repo:       f.repo,
		Claims:     f.claims,
		ClaimLines: f.claims,
		Companies:  companies,
		Partners:   partners,
		Warehouses: warehouses,
		Numerator:  numerator.New(&upsertQuerier{vals: map[string]int64{}}),
		TxManager:  fakeTxManager{},
	})
	return f
}

func TestCreateFromClaim_IncomingProductReturn(t *testing.T) {
	f := newFixture(t)

	pick, err := f.svc.CreateFromClaim(context.Background(), CreateRequest{
		ClaimID:       f.claimID,
		Type:          TypeIncoming,
		ProductReturn: true,
	})
	require.NoError(t, err)

	assert.Equal(t, f.retPartner, pick.PartnerID)
	assert.Equal(t, f.custLoc, pick.SourceLocationID)
	assert.Equal(t, f.destLoc, pick.DestLocationID)
	require.Len(t, pick.Moves, 2)
	for _, m := range pick.Moves {
		// Incoming moves are confirmed on creation
		assert.Equal(t, StateConfirmed, m.State)
		assert.Equal(t, f.custLoc, m.SourceLocationID)
		assert.Equal(t, f.destLoc, m.DestLocationID)
	}
	assert.NotEmpty(t, pick.Number)

	// Claim lines now carry the incoming moves
	claim, err := f.claims.GetByID(context.Background(), f.claimID)
	require.NoError(t, err)
	for _, l := range claim.Lines {
		assert.False(t, id.IsNil(l.MoveInID))
		assert.True(t, id.IsNil(l.MoveOutID))
	}
}

func TestCreateFromClaim_SecondPickingRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateFromClaim(ctx, CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.NoError(t, err)

	_, err = f.svc.CreateFromClaim(ctx, CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}

func TestCreateFromClaim_CancelledMoveFreesLines(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateFromClaim(ctx, CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, first.ID)
	require.NoError(t, err)

	second, err := f.svc.CreateFromClaim(ctx, CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.NoError(t, err)
	assert.Len(t, second.Moves, 2)
}

func TestCreateFromClaim_NoCommonLocation(t *testing.T) {
	f := newFixture(t)
	claim := f.claims.claims[f.claimID]
	claim.Lines[1].DestinationLocationID = id.New()

	_, err := f.svc.CreateFromClaim(context.Background(), CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNoCommonLocation))
}

func TestCreateFromClaim_NoCommonPartner(t *testing.T) {
	f := newFixture(t)
	claim := f.claims.claims[f.claimID]
	claim.Lines[1].ReturnPartnerID = id.New()

	_, err := f.svc.CreateFromClaim(context.Background(), CreateRequest{
		ClaimID: f.claimID, Type: TypeIncoming, ProductReturn: true,
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeNoCommonPartner))
}

func TestCreateFromClaim_OutgoingUsesWarehouseSource(t *testing.T) {
	f := newFixture(t)

	pick, err := f.svc.CreateFromClaim(context.Background(), CreateRequest{
		ClaimID: f.claimID,
		Type:    TypeOutgoing,
	})
	require.NoError(t, err)

	assert.Equal(t, f.whLoc, pick.SourceLocationID)
	assert.Equal(t, f.custLoc, pick.DestLocationID)
	// Without productReturn the partner is the claim delivery address
	assert.Equal(t, f.retPartner, pick.PartnerID)
	for _, m := range pick.Moves {
		assert.Equal(t, StateDraft, m.State)
	}
}

func TestCreateFromClaim_LineSelection(t *testing.T) {
	f := newFixture(t)
	claim := f.claims.claims[f.claimID]
	only := claim.Lines[0].LineID

	pick, err := f.svc.CreateFromClaim(context.Background(), CreateRequest{
		ClaimID:       f.claimID,
		LineIDs:       []id.ID{only},
		Type:          TypeIncoming,
		ProductReturn: true,
	})
	require.NoError(t, err)
	require.Len(t, pick.Moves, 1)
	assert.Equal(t, only, pick.Moves[0].ClaimLineID)
}
