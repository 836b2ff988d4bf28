package warranty

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fevxie/rma/internal/core/id"
)

func TestResolveRouting_FirstSellerWins(t *testing.T) {
	addr1, addr2 := id.New(), id.New()
	prod := &ProductTerms{
		Sellers: []SupplierTerms{
			{ReturnAddressID: addr1, ReturnPartnerKind: ReturnToSupplier},
			{ReturnAddressID: addr2, ReturnPartnerKind: ReturnToBrand},
		},
	}
	company := &CompanyTerms{RMAAddressID: id.New()}

	r := ResolveRouting(prod, company)
	assert.Equal(t, addr1, r.AddressID)
	assert.Equal(t, ReturnToSupplier, r.Kind)
}

func TestResolveRouting_CompanyFallback(t *testing.T) {
	rmaAddr, mainAddr := id.New(), id.New()

	t.Run("prefers rma address", func(t *testing.T) {
		r := ResolveRouting(&ProductTerms{}, &CompanyTerms{
			RMAAddressID:     rmaAddr,
			PartnerAddressID: mainAddr,
		})
		assert.Equal(t, rmaAddr, r.AddressID)
		assert.Equal(t, ReturnToCompany, r.Kind)
	})

	t.Run("falls back to main address", func(t *testing.T) {
		r := ResolveRouting(&ProductTerms{}, &CompanyTerms{PartnerAddressID: mainAddr})
		assert.Equal(t, mainAddr, r.AddressID)
		assert.Equal(t, ReturnToCompany, r.Kind)
	})

	t.Run("nil product", func(t *testing.T) {
		r := ResolveRouting(nil, &CompanyTerms{RMAAddressID: rmaAddr})
		assert.Equal(t, rmaAddr, r.AddressID)
		assert.Equal(t, ReturnToCompany, r.Kind)
	})
}

func TestDestinationLocation(t *testing.T) {
	whLoc, sellerLoc := id.New(), id.New()
	wh := &WarehouseTerms{StockLocationID: whLoc}

	t.Run("default is warehouse stock", func(t *testing.T) {
		got := DestinationLocation(&ProductTerms{}, wh)
		assert.Equal(t, whLoc, got)
	})

	t.Run("company seller keeps warehouse stock", func(t *testing.T) {
		prod := &ProductTerms{Sellers: []SupplierTerms{
			{ReturnPartnerKind: ReturnToCompany, StockLocationID: sellerLoc},
		}}
		got := DestinationLocation(prod, wh)
		assert.Equal(t, whLoc, got)
	})

	t.Run("supplier seller redirects to its location", func(t *testing.T) {
		prod := &ProductTerms{Sellers: []SupplierTerms{
			{ReturnPartnerKind: ReturnToSupplier, StockLocationID: sellerLoc},
		}}
		got := DestinationLocation(prod, wh)
		assert.Equal(t, sellerLoc, got)
	})

	t.Run("seller without location keeps warehouse stock", func(t *testing.T) {
		prod := &ProductTerms{Sellers: []SupplierTerms{
			{ReturnPartnerKind: ReturnToSupplier},
		}}
		got := DestinationLocation(prod, wh)
		assert.Equal(t, whLoc, got)
	})
}

func TestResolve(t *testing.T) {
	addr := id.New()
	whLoc := id.New()
	prod := &ProductTerms{}
	company := &CompanyTerms{RMAAddressID: addr}
	wh := &WarehouseTerms{StockLocationID: whLoc}

	t.Run("nil when any input absent", func(t *testing.T) {
		assert.Nil(t, Resolve(nil, company, wh))
		assert.Nil(t, Resolve(prod, nil, wh))
		assert.Nil(t, Resolve(prod, company, nil))
	})

	t.Run("combines address and destination", func(t *testing.T) {
		r := Resolve(prod, company, wh)
		assert.NotNil(t, r)
		assert.Equal(t, addr, r.AddressID)
		assert.Equal(t, ReturnToCompany, r.Kind)
		assert.Equal(t, whLoc, r.DestinationLocationID)
	})
}

func TestCommon(t *testing.T) {
	type line struct {
		dest id.ID
		note string
	}
	a, b := id.New(), id.New()

	t.Run("all agree", func(t *testing.T) {
		lines := []line{{dest: a}, {dest: a}}
		v, ok := Common(lines, func(l line) id.ID { return l.dest })
		assert.True(t, ok)
		assert.Equal(t, a, v)
	})

	t.Run("zero values ignored", func(t *testing.T) {
		lines := []line{{dest: a}, {}, {dest: a}}
		v, ok := Common(lines, func(l line) id.ID { return l.dest })
		assert.True(t, ok)
		assert.Equal(t, a, v)
	})

	t.Run("conflict", func(t *testing.T) {
		lines := []line{{dest: a}, {dest: b}}
		_, ok := Common(lines, func(l line) id.ID { return l.dest })
		assert.False(t, ok)
	})

	t.Run("nothing set", func(t *testing.T) {
		lines := []line{{}, {}}
		_, ok := Common(lines, func(l line) id.ID { return l.dest })
		assert.False(t, ok)
	})

	t.Run("no lines", func(t *testing.T) {
		_, ok := Common(nil, func(l line) id.ID { return l.dest })
		assert.False(t, ok)
	})

	t.Run("string attribute", func(t *testing.T) {
		lines := []line{{note: "x"}, {note: "x"}, {}}
		v, ok := Common(lines, func(l line) string { return l.note })
		assert.True(t, ok)
		assert.Equal(t, "x", v)
	})
}
