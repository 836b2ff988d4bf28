package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const (
	claimsTable     = "doc_claims"
	claimLinesTable = "doc_claim_lines"
)

// ClaimRepo implements claims.Repository.
type ClaimRepo struct {
	*BaseDocumentRepo[*claims.Claim]
}

// NewClaimRepo creates a new claim repository.
func NewClaimRepo(txManager *postgres.TxManager) *ClaimRepo {
	return &ClaimRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*claims.Claim](
			txManager,
			claimsTable,
			postgres.ExtractDBColumns[claims.Claim](),
			func() *claims.Claim { return &claims.Claim{} },
		),
	}
}

// GetLines retrieves lines for a claim, in creation order.
func (r *ClaimRepo) GetLines(ctx context.Context, claimID id.ID) ([]claims.ClaimLine, error) {
	sql, args, err := r.Builder().
		Select(postgres.ExtractDBColumns[claims.ClaimLine]()...).
		From(claimLinesTable).
		Where(squirrel.Eq{"claim_id": claimID}).
		OrderBy("line_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []claims.ClaimLine
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines saves lines for a claim (delete existing + insert new).
// Call inside a transaction.
func (r *ClaimRepo) SaveLines(ctx context.Context, claimID id.ID, lines []claims.ClaimLine) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + claimLinesTable + " WHERE claim_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, claimID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	q := r.Builder().
		Insert(claimLinesTable).
		Columns(
			"line_id", "claim_id", "description", "origin",
			"product_id", "invoice_line_id", "refund_line_id",
			"quantity", "unit_sale_price",
			"applicable_guarantee", "guarantee_limit", "warranty_status",
			"return_partner_kind", "return_partner_id", "destination_location_id",
			"state", "last_state_change", "move_in_id", "move_out_id",
		)

	for _, line := range lines {
		q = q.Values(
			line.LineID, claimID, line.Description, line.Origin,
			line.ProductID, line.InvoiceLineID, line.RefundLineID,
			line.Quantity, line.UnitSalePrice,
			line.ApplicableGuarantee, line.GuaranteeLimit, line.WarrantyStatus,
			line.ReturnPartnerKind, line.ReturnPartnerID, line.DestinationLocationID,
			line.State, line.LastStateChange, line.MoveInID, line.MoveOutID,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves claims with filtering.
func (r *ClaimRepo) List(ctx context.Context, filter claims.ListFilter) (domain.ListResult[*claims.Claim], error) {
	q := r.baseSelect()

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if filter.CompanyID != nil {
		q = q.Where(squirrel.Eq{"company_id": *filter.CompanyID})
	}

	if filter.PartnerID != nil {
		q = q.Where(squirrel.Eq{"partner_id": *filter.PartnerID})
	}

	if filter.InvoiceID != nil {
		q = q.Where(squirrel.Eq{"invoice_id": *filter.InvoiceID})
	}

	if filter.Type != nil {
		q = q.Where(squirrel.Eq{"type": *filter.Type})
	}

	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *filter.DateFrom})
	}

	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *filter.DateTo})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": pattern},
			squirrel.ILike{"subject": pattern},
		})
	}

	return r.listQuery(ctx, q, filter.ListFilter)
}
