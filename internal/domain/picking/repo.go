package picking

import (
	"context"
	"time"

	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/domain"
)

// Repository defines operations for picking documents.
type Repository interface {
	Create(ctx context.Context, p *Picking) error
	GetByID(ctx context.Context, pickingID id.ID) (*Picking, error)
	Update(ctx context.Context, p *Picking) error

	// Move operations
	GetMoves(ctx context.Context, pickingID id.ID) ([]StockMove, error)
	SaveMoves(ctx context.Context, pickingID id.ID, moves []StockMove) error
	GetMoveByID(ctx context.Context, moveID id.ID) (*StockMove, error)

	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Picking], error)
}

// ListFilter for filtering pickings.
type ListFilter struct {
	domain.ListFilter

	ClaimID  *id.ID
	Type     *Type
	State    *State
	DateFrom *time.Time
	DateTo   *time.Time
}
