package claims

import (
	"context"
	"fmt"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
	"github.com/fevxie/rma/internal/core/tx"
	"github.com/fevxie/rma/internal/domain"
	"github.com/fevxie/rma/internal/domain/audit"
	"github.com/fevxie/rma/internal/domain/catalogs/company"
	"github.com/fevxie/rma/internal/domain/catalogs/product"
	"github.com/fevxie/rma/internal/domain/catalogs/warehouse"
	"github.com/fevxie/rma/internal/domain/invoicing"
	"github.com/fevxie/rma/internal/domain/warranty"
	"github.com/fevxie/rma/pkg/logger"
	"github.com/fevxie/rma/pkg/numerator"
)

// ProductProvider loads products with their supplier records.
type ProductProvider interface {
	GetByID(ctx context.Context, productID id.ID) (*product.Product, error)
}

// CompanyProvider loads companies.
type CompanyProvider interface {
	GetByID(ctx context.Context, companyID id.ID) (*company.Company, error)
}

// WarehouseProvider loads warehouses and resolves company defaults.
type WarehouseProvider interface {
	GetByID(ctx context.Context, warehouseID id.ID) (*warehouse.Warehouse, error)
	GetDefaultForCompany(ctx context.Context, companyID id.ID) (*warehouse.Warehouse, error)
}

// Service provides business operations for claims.
type Service struct {
	repo       Repository
	invoices   invoicing.Repository
	products   ProductProvider
	companies  CompanyProvider
	warehouses WarehouseProvider
	numerator  *numerator.Service
	txManager  tx.Manager
	audit      audit.Recorder
	hooks      *domain.HookRegistry[*Claim]
	log        *logger.Logger
}

// ServiceConfig wires the claim service dependencies.
type ServiceConfig struct {
	Repo       Repository
	Invoices   invoicing.Repository
	Products   ProductProvider
	Companies  CompanyProvider
	Warehouses WarehouseProvider
	Numerator  *numerator.Service
	TxManager  tx.Manager
	Audit      audit.Recorder
	Logger     *logger.Logger
}

// NewService creates a new claim service.
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
		invoices:   cfg.Invoices,
		products:   cfg.Products,
		companies:  cfg.Companies,
		warehouses: cfg.Warehouses,
		numerator:  cfg.Numerator,
		txManager:  cfg.TxManager,
		audit:      rec,
		hooks:      domain.NewHookRegistry[*Claim](),
		log:        log,
	}
}

// Hooks returns the hook registry for registering callbacks.
func (s *Service) Hooks() *domain.HookRegistry[*Claim] {
	return s.hooks
}

// Create creates a new claim. A missing warehouse falls back to the
// company default; the number is generated per company.
func (s *Service) Create(ctx context.Context, claim *Claim) error {
	if err := s.hooks.Run(ctx, domain.BeforeCreate, claim); err != nil {
		return err
	}

	if id.IsNil(claim.WarehouseID) {
		wh, err := s.warehouses.GetDefaultForCompany(ctx, claim.CompanyID)
		if err != nil {
			return err
		}
		claim.WarehouseID = wh.ID
	}

	if err := claim.Validate(ctx); err != nil {
		return err
	}

	if claim.Number == "" {
		comp, err := s.companies.GetByID(ctx, claim.CompanyID)
		if err != nil {
			return err
		}
		cfg := numerator.DefaultConfig("RMA", comp.Code)
		number, err := s.numerator.GetNextNumber(ctx, cfg, nil, claim.Date)
		if err != nil {
			return fmt.Errorf("generate number: %w", err)
		}
		if err := claim.SetNumber(number); err != nil {
			return err
		}
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, claim); err != nil {
			return fmt.Errorf("create claim: %w", err)
		}
		if err := s.repo.SaveLines(ctx, claim.ID, claim.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, claim.ID, "create", claim)

	if err := s.hooks.Run(ctx, domain.AfterCreate, claim); err != nil {
		s.log.Warnw("after-create hook failed", "claim", claim.ID, "error", err)
	}

	logger.Info(ctx, "claim created", "id", claim.ID, "number", claim.Number)

	return nil
}

// GetByID retrieves a claim with lines.
func (s *Service) GetByID(ctx context.Context, claimID id.ID) (*Claim, error) {
	claim, err := s.repo.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	lines, err := s.repo.GetLines(ctx, claimID)
	if err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	claim.Lines = lines

	return claim, nil
}

// Update updates a claim document and its lines.
func (s *Service) Update(ctx context.Context, claim *Claim) error {
	if err := s.hooks.Run(ctx, domain.BeforeUpdate, claim); err != nil {
		return err
	}

	if err := claim.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, claim); err != nil {
			return fmt.Errorf("update claim: %w", err)
		}
		if err := s.repo.SaveLines(ctx, claim.ID, claim.Lines); err != nil {
			return fmt.Errorf("save lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.recordAudit(ctx, claim.ID, "update", claim)

	if err := s.hooks.Run(ctx, domain.AfterUpdate, claim); err != nil {
		s.log.Warnw("after-update hook failed", "claim", claim.ID, "error", err)
	}

	return nil
}

// Delete soft-deletes a claim.
func (s *Service) Delete(ctx context.Context, claimID id.ID) error {
	if err := s.repo.Delete(ctx, claimID); err != nil {
		return err
	}
	s.recordAudit(ctx, claimID, "delete", nil)
	return nil
}

// List retrieves claims with filtering.
func (s *Service) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Claim], error) {
	return s.repo.List(ctx, filter)
}

// SetLineState moves one line through its state machine.
func (s *Service) SetLineState(ctx context.Context, claimID, lineID id.ID, to LineState) (*Claim, error) {
	claim, err := s.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	line := claim.Line(lineID)
	if line == nil {
		return nil, apperror.NewNotFound("claim_line", lineID.String())
	}
	if err := line.SetState(to); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveLines(ctx, claim.ID, claim.Lines)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, claim.ID, "line_state", map[string]any{
		"lineId": lineID, "state": to,
	})

	return claim, nil
}

// SetWarranty is the interactive warranty action: every selected line must
// carry a product and an invoice line, and every failure surfaces to the
// caller. An empty lineIDs selects all lines.
func (s *Service) SetWarranty(ctx context.Context, claimID id.ID, lineIDs []id.ID) (*Claim, error) {
	return s.setWarranty(ctx, claimID, lineIDs, true)
}

// RefreshWarranty is the reactive recomputation that runs when claim inputs
// change. Evaluation failures blank the warranty fields instead of
// surfacing; routing is still resolved. It never blocks the edit.
func (s *Service) RefreshWarranty(ctx context.Context, claimID id.ID) (*Claim, error) {
	return s.setWarranty(ctx, claimID, nil, false)
}

func (s *Service) setWarranty(ctx context.Context, claimID id.ID, lineIDs []id.ID, strict bool) (*Claim, error) {
	claim, err := s.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}

	selected := make(map[id.ID]bool, len(lineIDs))
	for _, lid := range lineIDs {
		selected[lid] = true
	}

	for i := range claim.Lines {
		line := &claim.Lines[i]
		if len(selected) > 0 && !selected[line.LineID] {
			continue
		}
		if err := s.computeLine(ctx, claim, line, strict); err != nil {
			return nil, err
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.SaveLines(ctx, claim.ID, claim.Lines)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, claim.ID, "set_warranty", claim.Lines)

	return claim, nil
}

// AutoSetWarranty runs the strict warranty action on every line that has no
// warranty decision yet. Shipment creation calls this before grouping.
func (s *Service) AutoSetWarranty(ctx context.Context, claim *Claim) error {
	var pending []id.ID
	for i := range claim.Lines {
		if claim.Lines[i].WarrantyStatus == "" {
			pending = append(pending, claim.Lines[i].LineID)
		}
	}
	if len(pending) == 0 {
		return nil
	}

	updated, err := s.SetWarranty(ctx, claim.ID, pending)
	if err != nil {
		return err
	}
	claim.Lines = updated.Lines
	return nil
}

// computeLine evaluates warranty and routing for one line and writes the
// outcome onto it. In strict mode every failure is returned; in lenient
// mode evaluation failures blank the warranty fields.
func (s *Service) computeLine(ctx context.Context, claim *Claim, line *ClaimLine, strict bool) error {
	if id.IsNil(line.ProductID) || id.IsNil(line.InvoiceLineID) || id.IsNil(claim.InvoiceID) {
		if strict {
			return apperror.NewMissingRequiredField("product and invoice").
				WithDetail("lineId", line.LineID.String())
		}
		line.ClearWarranty()
		line.ApplyRouting(nil)
		return nil
	}

	invTerms, prodTerms, compTerms, whTerms, err := s.loadTerms(ctx, claim, line)
	if err != nil {
		return err
	}

	guarantee := line.ApplicableGuarantee
	if guarantee == "" {
		guarantee = warranty.GuaranteeCompany
	}

	decision, evalErr := warranty.Evaluate(invTerms, guarantee, prodTerms, claim.Date)
	routing := warranty.Resolve(prodTerms, compTerms, whTerms)

	if evalErr != nil {
		if strict || !isWarrantyInputError(evalErr) {
			return evalErr
		}
		// Lenient mode: blank warranty, keep whatever routing resolved
		line.ClearWarranty()
		line.ApplyRouting(routing)
		return nil
	}

	line.ApplicableGuarantee = guarantee
	line.ApplyDecision(decision)
	line.ApplyRouting(routing)
	return nil
}

// loadTerms assembles the four snapshots the warranty core consumes.
func (s *Service) loadTerms(ctx context.Context, claim *Claim, line *ClaimLine) (*warranty.InvoiceTerms, *warranty.ProductTerms, *warranty.CompanyTerms, *warranty.WarehouseTerms, error) {
	var invTerms *warranty.InvoiceTerms
	if !id.IsNil(claim.InvoiceID) {
		inv, err := s.invoices.GetByID(ctx, claim.InvoiceID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		invTerms = inv.Terms()
	}

	prod, err := s.products.GetByID(ctx, line.ProductID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	comp, err := s.companies.GetByID(ctx, claim.CompanyID)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	var whTerms *warranty.WarehouseTerms
	if !id.IsNil(claim.WarehouseID) {
		wh, err := s.warehouses.GetByID(ctx, claim.WarehouseID)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		whTerms = wh.Terms()
	}

	return invTerms, prod.Terms(), comp.Terms(), whTerms, nil
}

// BuildLinesFromInvoice populates claim lines from the claim's invoice,
// one draft line per invoice line, with a lenient warranty prefill. The
// delivery address defaults to the invoice partner.
func (s *Service) BuildLinesFromInvoice(ctx context.Context, claimID id.ID) (*Claim, error) {
	claim, err := s.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if id.IsNil(claim.InvoiceID) {
		return nil, apperror.NewMissingRequiredField("invoice").
			WithDetail("claimId", claim.ID.String())
	}

	inv, err := s.invoices.GetByID(ctx, claim.InvoiceID)
	if err != nil {
		return nil, err
	}
	invLines, err := s.invoices.ListLines(ctx, claim.InvoiceID)
	if err != nil {
		return nil, err
	}

	if id.IsNil(claim.DeliveryAddressID) {
		claim.DeliveryAddressID = inv.PartnerID
	}
	if id.IsNil(claim.PartnerID) {
		claim.PartnerID = inv.PartnerID
	}

	claim.Lines = claim.Lines[:0]
	for _, il := range invLines {
		line := NewClaimLine(claim.ID, il.ProductID, il.Quantity)
		line.Description = il.Description
		line.InvoiceLineID = il.ID
		line.UnitSalePrice = il.UnitPrice
		if err := s.computeLine(ctx, claim, &line, false); err != nil {
			return nil, err
		}
		claim.Lines = append(claim.Lines, line)
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Update(ctx, claim); err != nil {
			return fmt.Errorf("update claim: %w", err)
		}
		return s.repo.SaveLines(ctx, claim.ID, claim.Lines)
	})
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, claim.ID, "build_lines", claim.Lines)

	return claim, nil
}

func (s *Service) recordAudit(ctx context.Context, claimID id.ID, action string, payload any) {
	if err := s.audit.Record(ctx, "claim", claimID, action, payload); err != nil {
		s.log.Warnw("audit record failed", "claim", claimID, "action", action, "error", err)
	}
}

func isWarrantyInputError(err error) bool {
	return apperror.HasCode(err, apperror.CodeInvoiceNoDate) ||
		apperror.HasCode(err, apperror.CodeProductNoSupplier)
}
