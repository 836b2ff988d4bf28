// Package warranty implements the RMA warranty window computation and the
// return routing decisions for claim lines. Everything here is pure:
// snapshots in, values out, no I/O.
package warranty

import (
	"math"
	"time"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
)

// GuaranteeType identifies who fulfills the warranty for a claim.
type GuaranteeType string

const (
	GuaranteeCompany  GuaranteeType = "company"
	GuaranteeSupplier GuaranteeType = "supplier"
	GuaranteeBrand    GuaranteeType = "brand"
)

// IsValidGuaranteeType reports whether t is a known guarantee type.
func IsValidGuaranteeType(t GuaranteeType) bool {
	switch t {
	case GuaranteeCompany, GuaranteeSupplier, GuaranteeBrand:
		return true
	}
	return false
}

// Status classifies a claim date against the computed warranty limit.
type Status string

const (
	StatusValid      Status = "valid"
	StatusExpired    Status = "expired"
	StatusNotDefined Status = "not_defined"
)

// Decision is the outcome of a warranty evaluation. It is recomputed from
// its inputs every time; nothing here is cached.
type Decision struct {
	// LimitDate is the last day the warranty covers.
	LimitDate time.Time

	// Status is valid, expired, or not_defined when no duration is configured.
	Status Status
}

// SupplierTerms is the snapshot of one product supplier record.
type SupplierTerms struct {
	PartnerID id.ID

	// WarrantyMonths is the supplier warranty duration, possibly fractional.
	WarrantyMonths float64

	// ReturnPartnerKind states who receives the returned goods.
	ReturnPartnerKind ReturnKind

	// ReturnAddressID is where the customer sends the product back.
	ReturnAddressID id.ID

	// StockLocationID is the supplier's stock location for returned goods.
	StockLocationID id.ID
}

// ProductTerms is the snapshot of the product fields the calculator reads.
// Sellers keeps the configured supplier order; the first entry wins.
type ProductTerms struct {
	ProductID      id.ID
	WarrantyMonths float64
	Sellers        []SupplierTerms
}

// InvoiceTerms is the snapshot of the invoice fields the calculator reads.
type InvoiceTerms struct {
	InvoiceID id.ID

	// Date is nil when the invoice has not been validated yet.
	Date *time.Time
}

// Limit computes the warranty expiration date from a start date and a
// duration in months. The integer part is added with calendar month
// arithmetic (day-of-month clamped to the target month); the fractional
// part becomes whole days scaled by the length of the month the integer
// addition lands in, truncated.
//
// Warranty periods are contractually expressed in months, so a "1.5 month"
// entitlement must resolve against the actual calendar, not a fixed
// 30-day month.
func Limit(start time.Time, months float64) time.Time {
	whole, frac := math.Modf(months)
	anchor := addMonths(start, int(whole))
	days := int(frac * float64(daysIn(anchor.Year(), anchor.Month())))
	if days == 0 {
		return anchor
	}
	return anchor.AddDate(0, 0, days)
}

// addMonths adds n calendar months, clamping the day of month to the
// target month's length (Jan 31 + 1 month = Feb 28/29).
func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := int(m) - 1 + n
	ny := y + total/12
	nm := time.Month(total%12 + 1)
	if dm := daysIn(ny, nm); d > dm {
		d = dm
	}
	return time.Date(ny, nm, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Evaluate computes the warranty limit and status for a claim line.
//
// When any of the inputs is absent the evaluation is skipped entirely and
// (nil, nil) is returned: the caller clears its warranty fields so they are
// never stale. Failure conditions:
//   - the invoice has no date: INVOICE_NO_DATE
//   - guarantee type is supplier and the product has no seller:
//     PRODUCT_NO_SUPPLIER
//
// The duration comes from the first-listed seller for supplier guarantees,
// from the product itself otherwise. A zero duration yields StatusNotDefined
// with the limit equal to the invoice date. The comparison against the
// limit is at day granularity and inclusive: a claim filed on the
// expiration day is still valid.
func Evaluate(invoice *InvoiceTerms, guarantee GuaranteeType, product *ProductTerms, claimDate time.Time) (*Decision, error) {
	if invoice == nil || guarantee == "" || product == nil || claimDate.IsZero() {
		return nil, nil
	}
	if invoice.Date == nil {
		return nil, apperror.NewInvoiceNoDate(invoice.InvoiceID)
	}

	var months float64
	if guarantee == GuaranteeSupplier {
		if len(product.Sellers) == 0 {
			return nil, apperror.NewProductNoSupplier(product.ProductID)
		}
		months = product.Sellers[0].WarrantyMonths
	} else {
		months = product.WarrantyMonths
	}

	decision := &Decision{
		LimitDate: Limit(*invoice.Date, months),
		Status:    StatusNotDefined,
	}
	if months > 0 {
		if truncateDay(claimDate).After(truncateDay(decision.LimitDate)) {
			decision.Status = StatusExpired
		} else {
			decision.Status = StatusValid
		}
	}
	return decision, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
