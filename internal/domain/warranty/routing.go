package warranty

import (
	"github.com/fevxie/rma/internal/core/id"
)

// ReturnKind states which party a returned product is shipped to.
type ReturnKind string

const (
	ReturnToCompany  ReturnKind = "company"
	ReturnToSupplier ReturnKind = "supplier"
	ReturnToBrand    ReturnKind = "brand"
)

// IsValidReturnKind reports whether k is a known return kind.
func IsValidReturnKind(k ReturnKind) bool {
	switch k {
	case ReturnToCompany, ReturnToSupplier, ReturnToBrand:
		return true
	}
	return false
}

// CompanyTerms is the snapshot of the company fields routing reads.
type CompanyTerms struct {
	CompanyID id.ID

	// RMAAddressID is the dedicated return address, when configured.
	RMAAddressID id.ID

	// PartnerAddressID is the company's own main address, the fallback.
	PartnerAddressID id.ID
}

// WarehouseTerms is the snapshot of the warehouse fields routing reads.
type WarehouseTerms struct {
	WarehouseID id.ID

	// StockLocationID is the warehouse's main stock location.
	StockLocationID id.ID
}

// Routing is where a returned product must be sent and who receives it.
type Routing struct {
	AddressID             id.ID
	Kind                  ReturnKind
	DestinationLocationID id.ID
}

// Resolve combines return address and destination location resolution for
// one claim line. When any input is absent it returns nil so the caller
// can clear the routing fields instead of persisting a partial answer.
func Resolve(product *ProductTerms, company *CompanyTerms, warehouse *WarehouseTerms) *Routing {
	if product == nil || company == nil || warehouse == nil {
		return nil
	}
	r := ResolveRouting(product, company)
	r.DestinationLocationID = DestinationLocation(product, warehouse)
	return &r
}

// ResolveRouting determines the return address for a claim line.
//
// The first configured seller of the product decides: goods go to the
// seller's return address with the seller's return kind. A product with no
// sellers is returned to the company, preferring its dedicated RMA address
// over its main one.
func ResolveRouting(product *ProductTerms, company *CompanyTerms) Routing {
	if product != nil && len(product.Sellers) > 0 {
		s := product.Sellers[0]
		return Routing{AddressID: s.ReturnAddressID, Kind: s.ReturnPartnerKind}
	}
	r := Routing{Kind: ReturnToCompany}
	if company != nil {
		if !id.IsNil(company.RMAAddressID) {
			r.AddressID = company.RMAAddressID
		} else {
			r.AddressID = company.PartnerAddressID
		}
	}
	return r
}

// DestinationLocation determines the stock location incoming returned
// goods are received into. The warehouse's main stock location is the
// default; when the product's first seller keeps the goods (return kind
// other than company), the seller's own stock location wins.
func DestinationLocation(product *ProductTerms, warehouse *WarehouseTerms) id.ID {
	var dest id.ID
	if warehouse != nil {
		dest = warehouse.StockLocationID
	}
	if product != nil && len(product.Sellers) > 0 {
		if s := product.Sellers[0]; s.ReturnPartnerKind != ReturnToCompany && !id.IsNil(s.StockLocationID) {
			dest = s.StockLocationID
		}
	}
	return dest
}
