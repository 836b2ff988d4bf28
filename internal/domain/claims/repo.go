package claims

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines operations for claim documents.
type Repository interface {
	Create(ctx context.Context, claim *Claim) error
	GetByID(ctx context.Context, claimID id.ID) (*Claim, error)
	GetByNumber(ctx context.Context, number string) (*Claim, error)
	Update(ctx context.Context, claim *Claim) error
	Delete(ctx context.Context, claimID id.ID) error

	// Line operations
	GetLines(ctx context.Context, claimID id.ID) ([]ClaimLine, error)
	SaveLines(ctx context.Context, claimID id.ID, lines []ClaimLine) error

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Claim], error)
}

// ListFilter for filtering claims.
type ListFilter struct {
	domain.ListFilter

	CompanyID *id.ID
	PartnerID *id.ID
	InvoiceID *id.ID
	Type      *ClaimType
	DateFrom  *time.Time
	DateTo    *time.Time
}
