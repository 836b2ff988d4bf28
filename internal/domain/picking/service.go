package picking

import (
	"context"
	"fmt"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/audit"
	"github.com/fevxie/rma/internal/domain/catalogs/partner"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/domain/claims"
	"github.com/fevxie/rma/internal/domain/warranty"
	"github.com/fevxie/rma/pkg/logger"
	"github.com/fevxie/rma/pkg/numerator"
)

// ClaimProvider is the slice of the claim service pickings need.
type ClaimProvider interface {
	GetByID(ctx context.Context, claimID id.ID) (*claims.Claim, error)
	AutoSetWarranty(ctx context.Context, claim *claims.Claim) error
}

// PartnerProvider loads partners.
type PartnerProvider interface {
	GetByID(ctx context.Context, partnerID id.ID) (*partner.Partner, error)
}

// WarehouseProvider loads warehouses.
type WarehouseProvider interface {
	GetByID(ctx context.Context, warehouseID id.ID) (*warehouse.Warehouse, error)
}

// CreateRequest describes a picking to build from claim lines.
type CreateRequest struct {
	ClaimID id.ID

	// LineIDs selects claim lines; empty selects all
	LineIDs []id.ID

	Type Type

	// ProductReturn requires the selected lines to share one destination
	// location and one return partner
	ProductReturn bool

	Note string
}

// Service provides business operations for pickings.
type Service struct {
	repo       Repository
	claims     ClaimProvider
	claimLines claims.Repository
	companies  claims.CompanyProvider
	partners   PartnerProvider
	warehouses WarehouseProvider
	numerator  *numerator.Service
	txManager  tx.Manager
	audit      audit.Recorder
	log        *logger.Logger
}

// ServiceConfig wires the picking service dependencies.
type ServiceConfig struct {
	Repo       Repository
	Claims     ClaimProvider
	ClaimLines claims.Repository
	Companies  claims.CompanyProvider
	Partners   PartnerProvider
	Warehouses WarehouseProvider
	Numerator  *numerator.Service
	TxManager  tx.Manager
	Audit      audit.Recorder
	Logger     *logger.Logger
}

// NewService creates a new picking service.
func NewService(cfg ServiceConfig) *Service {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}
	rec := cfg.Audit
	if rec == nil {
		rec = audit.Nop{}
	}
	return &Service{
		repo:       cfg.Repo,
		claims:     cfg.Claims,
		claimLines: cfg.ClaimLines,
		companies:  cfg.Companies,
		partners:   cfg.Partners,
		warehouses: cfg.Warehouses,
		numerator:  cfg.Numerator,
		txManager:  cfg.TxManager,
		audit:      rec,
		log:        log,
	}
}

// CreateFromClaim groups claim lines into one picking. Lines already
// carrying a live move for the direction are skipped; when none remain the
// whole request is rejected. Incoming moves are confirmed immediately.
func (s *Service) CreateFromClaim(ctx context.Context, req CreateRequest) (*Picking, error) {
	claim, err := s.claims.GetByID(ctx, req.ClaimID)
	if err != nil {
		return nil, err
	}

	eligible, err := s.eligibleLines(ctx, claim, req)
	if err != nil {
		return nil, err
	}
	if len(eligible) == 0 {
		return nil, apperror.NewConflict("A picking has already been created for this claim.").
			WithDetail("claimId", claim.ID.String())
	}

	var commonDest id.ID
	if req.ProductReturn {
		// Destination check runs against the lines as they are, before any
		// warranty recomputation can paper over a disagreement.
		dest, ok := warranty.Common(eligible, func(l *claims.ClaimLine) id.ID {
			return l.DestinationLocationID
		})
		if !ok {
			return nil, apperror.NewNoCommonLocation()
		}
		commonDest = dest

		if err := s.claims.AutoSetWarranty(ctx, claim); err != nil {
			return nil, err
		}
		// Re-resolve pointers, AutoSetWarranty may have replaced the slice
		eligible, err = s.eligibleLines(ctx, claim, req)
		if err != nil {
			return nil, err
		}
	}

	pickPartnerID := claim.DeliveryAddressID
	if req.ProductReturn {
		p, ok := warranty.Common(eligible, func(l *claims.ClaimLine) id.ID {
			return l.ReturnPartnerID
		})
		if !ok {
			return nil, apperror.NewNoCommonPartner()
		}
		pickPartnerID = p
	}

	source, dest, err := s.resolveLocations(ctx, claim, req.Type, pickPartnerID, commonDest, req.ProductReturn)
	if err != nil {
		return nil, err
	}

	pick := NewPicking(claim.CompanyID, claim.ID, req.Type)
	pick.PartnerID = pickPartnerID
	pick.SourceLocationID = source
	pick.DestLocationID = dest
	pick.Note = req.Note

	moveState := StateDraft
	if req.Type == TypeIncoming {
		// Returned goods are expected, not planned: confirm on creation
		moveState = StateConfirmed
	}

	for _, line := range eligible {
		pick.Moves = append(pick.Moves, StockMove{
			MoveID:           id.New(),
			PickingID:        pick.ID,
			ProductID:        line.ProductID,
			Quantity:         line.Quantity,
			UnitPrice:        line.UnitSalePrice,
			PartnerID:        pickPartnerID,
			SourceLocationID: source,
			DestLocationID:   dest,
			State:            moveState,
			ClaimLineID:      line.LineID,
		})
	}

	if err := pick.Validate(ctx); err != nil {
		return nil, err
	}

	if pick.Number == "" {
		comp, err := s.companies.GetByID(ctx, claim.CompanyID)
		if err != nil {
			return nil, err
		}
		cfg := numerator.DefaultConfig("PICK", comp.Code)
		opts := &numerator.Options{Strategy: numerator.StrategyCached}
		number, err := s.numerator.GetNextNumber(ctx, cfg, opts, pick.Date)
		if err != nil {
			return nil, fmt.Errorf("generate number: %w", err)
		}
		if err := pick.SetNumber(number); err != nil {
			return nil, err
		}
	}

	// Stamp the created moves back onto the claim lines
	for i := range pick.Moves {
		line := claim.Line(pick.Moves[i].ClaimLineID)
		if line == nil {
			continue
		}
		if req.Type == TypeIncoming {
			line.MoveInID = pick.Moves[i].MoveID
		} else {
			line.MoveOutID = pick.Moves[i].MoveID
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, pick); err != nil {
			return fmt.Errorf("create picking: %w", err)
		}
		if err := s.repo.SaveMoves(ctx, pick.ID, pick.Moves); err != nil {
			return fmt.Errorf("save moves: %w", err)
		}
		if err := s.claimLines.SaveLines(ctx, claim.ID, claim.Lines); err != nil {
			return fmt.Errorf("stamp claim lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, pick.ID, "create", pick)

	logger.Info(ctx, "picking created",
		"id", pick.ID,
		"number", pick.Number,
		"claim", claim.ID,
		"type", pick.Type,
		"moves", len(pick.Moves))

	return pick, nil
}

// eligibleLines selects the claim lines the request may ship: requested
// (or all) lines that do not yet carry a live move for the direction.
func (s *Service) eligibleLines(ctx context.Context, claim *claims.Claim, req CreateRequest) ([]*claims.ClaimLine, error) {
	selected := make(map[id.ID]bool, len(req.LineIDs))
	for _, lid := range req.LineIDs {
		selected[lid] = true
	}

	var out []*claims.ClaimLine
	for i := range claim.Lines {
		line := &claim.Lines[i]
		if len(selected) > 0 && !selected[line.LineID] {
			continue
		}

		moveID := line.MoveInID
		if req.Type == TypeOutgoing {
			moveID = line.MoveOutID
		}
		if !id.IsNil(moveID) {
			move, err := s.repo.GetMoveByID(ctx, moveID)
			if err != nil && !apperror.IsNotFound(err) {
				return nil, err
			}
			if move != nil && move.IsLive() {
				continue
			}
		}
		out = append(out, line)
	}
	return out, nil
}

// resolveLocations picks the source and destination stock locations for
// the picking direction.
func (s *Service) resolveLocations(ctx context.Context, claim *claims.Claim, pickType Type, partnerID, commonDest id.ID, productReturn bool) (id.ID, id.ID, error) {
	var warehouseStock id.ID
	if !id.IsNil(claim.WarehouseID) {
		wh, err := s.warehouses.GetByID(ctx, claim.WarehouseID)
		if err != nil {
			return id.Nil(), id.Nil(), err
		}
		warehouseStock = wh.StockLocationID
	}

	var customerLoc id.ID
	if !id.IsNil(partnerID) {
		p, err := s.partners.GetByID(ctx, partnerID)
		if err != nil && !apperror.IsNotFound(err) {
			return id.Nil(), id.Nil(), err
		}
		if p != nil {
			customerLoc = p.CustomerLocationID
		}
	}

	if pickType == TypeOutgoing {
		return warehouseStock, customerLoc, nil
	}

	dest := warehouseStock
	if productReturn && !id.IsNil(commonDest) {
		dest = commonDest
	}
	return customerLoc, dest, nil
}

// GetByID retrieves a picking with moves.
func (s *Service) GetByID(ctx context.Context, pickingID id.ID) (*Picking, error) {
	pick, err := s.repo.GetByID(ctx, pickingID)
	if err != nil {
		return nil, err
	}

	moves, err := s.repo.GetMoves(ctx, pickingID)
	if err != nil {
		return nil, fmt.Errorf("get moves: %w", err)
	}
	pick.Moves = moves

	return pick, nil
}

// List retrieves pickings with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Picking], error) {
	return s.repo.List(ctx, filter)
}

// Cancel cancels a picking and all its moves, freeing the claim lines for
// a new shipment.
func (s *Service) Cancel(ctx context.Context, pickingID id.ID) (*Picking, error) {
	pick, err := s.GetByID(ctx, pickingID)
	if err != nil {
		return nil, err
	}
	if pick.State == StateDone {
		return nil, apperror.NewInvalidStateTransition(string(pick.State), string(StateCancel))
	}

	pick.State = StateCancel
	for i := range pick.Moves {
		pick.Moves[i].State = StateCancel
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, pick); err != nil {
			return fmt.Errorf("update picking: %w", err)
		}
		return s.repo.SaveMoves(ctx, pick.ID, pick.Moves)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, pick.ID, "cancel", nil)

	return pick, nil
}

func (s *Service) recordAudit(ctx context.Context, pickingID id.ID, action string, payload any) {
	if err := s.audit.Record(ctx, "picking", pickingID, action, payload); err != nil {
		s.log.Warnw("audit record failed", "picking", pickingID, "action", action, "error", err)
	}
}
