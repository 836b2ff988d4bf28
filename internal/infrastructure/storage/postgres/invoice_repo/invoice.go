// Package invoice_repo provides read-only PostgreSQL access to invoices.
package invoice_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain/invoicing"
	"github.com/fevxie/rma/internal/infrastructure/storage/postgres"
)

const (
	invoicesTable     = "acc_invoices"
	invoiceLinesTable = "acc_invoice_lines"
)

// InvoiceRepo implements invoicing.Repository.
type InvoiceRepo struct {
	txManager *postgres.TxManager
}

var _ invoicing.Repository = (*InvoiceRepo)(nil)

// NewInvoiceRepo creates a new invoice repository.
func NewInvoiceRepo(txManager *postgres.TxManager) *InvoiceRepo {
	return &InvoiceRepo{txManager: txManager}
}

func (r *InvoiceRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// GetByID retrieves an invoice header.
func (r *InvoiceRepo) GetByID(ctx context.Context, invoiceID id.ID) (*invoicing.Invoice, error) {
	sql, args, err := r.builder().
		Select(postgres.ExtractDBColumns[invoicing.Invoice]()...).
		From(invoicesTable).
		Where(squirrel.Eq{"id": invoiceID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var inv invoicing.Invoice
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &inv, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice", invoiceID.String())
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}

	return &inv, nil
}

// GetLine retrieves one invoice line.
func (r *InvoiceRepo) GetLine(ctx context.Context, lineID id.ID) (*invoicing.InvoiceLine, error) {
	sql, args, err := r.builder().
		Select(postgres.ExtractDBColumns[invoicing.InvoiceLine]()...).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"id": lineID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var line invoicing.InvoiceLine
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), &line, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("invoice line", lineID.String())
		}
		return nil, fmt.Errorf("get invoice line: %w", err)
	}

	return &line, nil
}

// ListLines retrieves all lines of an invoice.
func (r *InvoiceRepo) ListLines(ctx context.Context, invoiceID id.ID) ([]invoicing.InvoiceLine, error) {
	sql, args, err := r.builder().
		Select(postgres.ExtractDBColumns[invoicing.InvoiceLine]()...).
		From(invoiceLinesTable).
		Where(squirrel.Eq{"invoice_id": invoiceID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []invoicing.InvoiceLine
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}

	return lines, nil
}
