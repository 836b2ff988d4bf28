package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/picking"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const (
	pickingsTable   = "doc_pickings"
	stockMovesTable = "doc_stock_moves"
)

// PickingRepo implements picking.Repository.
type PickingRepo struct {
	*BaseDocumentRepo[*picking.Picking]
}

// NewPickingRepo creates a new picking repository.
func NewPickingRepo(txManager *postgres.TxManager) *PickingRepo {
	return &PickingRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*picking.Picking](
			txManager,
			pickingsTable,
			postgres.ExtractDBColumns[picking.Picking](),
			func() *picking.Picking { return &picking.Picking{} },
		),
	}
}

// GetMoves retrieves moves for a picking.
func (r *PickingRepo) GetMoves(ctx context.Context, pickingID id.ID) ([]picking.StockMove, error) {
	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[picking.StockMove]()...).
		From(stockMovesTable).
		Where(squirrel.Eq{"picking_id": pickingID}).
		OrderBy("move_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var moves []picking.StockMove
	if err := pgxscan.Select(ctx, r.Querier(ctx), &moves, sql, args...); err != nil {
		return nil, fmt.Errorf("get moves: %w", err)
	}

	return moves, nil
}

// GetMoveByID retrieves a single stock move.
func (r *PickingRepo) GetMoveByID(ctx context.Context, moveID id.ID) (*picking.StockMove, error) {
	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[picking.StockMove]()...).
		From(stockMovesTable).
		Where(squirrel.Eq{"move_id": moveID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var move picking.StockMove
	if err := pgxscan.Get(ctx, r.Querier(ctx), &move, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound(stockMovesTable, moveID.String())
		}
		return nil, fmt.Errorf("get move by id: %w", err)
	}

	return &move, nil
}

// SaveMoves saves moves for a picking (delete existing + insert new).
// Call inside a transaction.
func (r *PickingRepo) SaveMoves(ctx context.Context, pickingID id.ID, moves []picking.StockMove) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + stockMovesTable + " WHERE picking_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, pickingID); err != nil {
		return fmt.Errorf("delete existing moves: %w", err)
	}

	if len(moves) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(stockMovesTable).
		Columns(
			"move_id", "picking_id", "product_id", "quantity", "unit_price",
			"partner_id", "source_location_id", "dest_location_id",
			"state", "claim_line_id",
		)

	for _, m := range moves {
		q = q.Values(
			m.MoveID, pickingID, m.ProductID, m.Quantity, m.UnitPrice,
			m.PartnerID, m.SourceLocationID, m.DestLocationID,
			m.State, m.ClaimLineID,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert moves: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert moves: %w", err)
	}

	return nil
}

// List retrieves pickings with filtering.
func (r *PickingRepo) List(ctx context.Context, filter picking.ListFilter) (domain.ListResult[*picking.Picking], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.ClaimID != nil {
		q = q.Where(squirrel.Eq{"claim_id": *filter.ClaimID})
	}

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}

	if filter.State != nil {
		q = q.Where(squirrel.Eq{"state": *filter.State})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		q = q.Where(squirrel.ILike{"number": "%" + filter.Search + "%"})
	}

	return r.listQuery(ctx, q, filter.ListFilter)
}
