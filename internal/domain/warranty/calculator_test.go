package warranty

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fevxie/rma/internal/core/apperror"
	"github.com/fevxie/rma/internal/core/id"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLimit(t *testing.T) {
	cases := []struct {
		name   string
		start  time.Time
		months float64
		want   time.Time
	}{
		{"whole month", date(2023, 1, 15), 1.0, date(2023, 2, 15)},
		{"half month lands in february", date(2023, 1, 31), 1.5, date(2023, 3, 14)},
		{"clamp jan 31 to feb 28", date(2023, 1, 31), 1.0, date(2023, 2, 28)},
		{"clamp jan 31 to feb 29 leap year", date(2024, 1, 31), 1.0, date(2024, 2, 29)},
		{"half month in leap february", date(2024, 1, 31), 1.5, date(2024, 3, 14)},
		{"year rollover", date(2023, 11, 15), 2.0, date(2024, 1, 15)},
		{"twelve months", date(2023, 3, 10), 12.0, date(2024, 3, 10)},
		{"twenty four months", date(2022, 6, 1), 24.0, date(2024, 6, 1)},
		{"zero months", date(2023, 5, 5), 0, date(2023, 5, 5)},
		{"pure fraction in 31 day month", date(2023, 1, 1), 0.5, date(2023, 1, 16)},
		{"pure fraction in 30 day month", date(2023, 4, 1), 0.5, date(2023, 4, 16)},
		{"fraction truncates", date(2023, 4, 1), 0.1, date(2023, 4, 4)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Limit(tc.start, tc.months)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLimit_FractionScalesByResultMonth(t *testing.T) {
	// Same fractional duration, different result months: 0.5 of February
	// is 14 days, 0.5 of March is 15.
	feb := Limit(date(2023, 1, 10), 1.5)
	mar := Limit(date(2023, 2, 10), 1.5)
	assert.Equal(t, date(2023, 2, 24), feb)
	assert.Equal(t, date(2023, 3, 25), mar)
}

func TestEvaluate_MissingInputs(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New(), Date: timePtr(date(2023, 1, 1))}
	prod := &ProductTerms{ProductID: id.New(), WarrantyMonths: 12}
	claim := date(2023, 6, 1)

	cases := []struct {
		name      string
		invoice   *InvoiceTerms
		guarantee GuaranteeType
		product   *ProductTerms
		claimDate time.Time
	}{
		{"nil invoice", nil, GuaranteeCompany, prod, claim},
		{"empty guarantee", inv, "", prod, claim},
		{"nil product", inv, GuaranteeCompany, nil, claim},
		{"zero claim date", inv, GuaranteeCompany, prod, time.Time{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Evaluate(tc.invoice, tc.guarantee, tc.product, tc.claimDate)
			require.NoError(t, err)
			assert.Nil(t, d)
		})
	}
}

func TestEvaluate_InvoiceWithoutDate(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New()}
	prod := &ProductTerms{ProductID: id.New(), WarrantyMonths: 12}

	d, err := Evaluate(inv, GuaranteeCompany, prod, date(2023, 6, 1))
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, apperror.HasCode(err, apperror.CodeInvoiceNoDate))
}

func TestEvaluate_SupplierGuaranteeWithoutSeller(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New(), Date: timePtr(date(2023, 1, 1))}
	prod := &ProductTerms{ProductID: id.New(), WarrantyMonths: 12}

	d, err := Evaluate(inv, GuaranteeSupplier, prod, date(2023, 6, 1))
	require.Error(t, err)
	assert.Nil(t, d)
	assert.True(t, apperror.HasCode(err, apperror.CodeProductNoSupplier))
}

func TestEvaluate_SupplierGuaranteeUsesFirstSeller(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New(), Date: timePtr(date(2023, 1, 15))}
	prod := &ProductTerms{
		ProductID:      id.New(),
		WarrantyMonths: 24, // must be ignored for supplier guarantees
		Sellers: []SupplierTerms{
			{PartnerID: id.New(), WarrantyMonths: 1},
			{PartnerID: id.New(), WarrantyMonths: 36},
		},
	}

	d, err := Evaluate(inv, GuaranteeSupplier, prod, date(2023, 2, 20))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, date(2023, 2, 15), d.LimitDate)
	assert.Equal(t, StatusExpired, d.Status)
}

func TestEvaluate_Status(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New(), Date: timePtr(date(2023, 1, 15))}
	prod := &ProductTerms{ProductID: id.New(), WarrantyMonths: 1}

	cases := []struct {
		name      string
		claimDate time.Time
		want      Status
	}{
		{"before the limit", date(2023, 2, 1), StatusValid},
		{"on the limit day", date(2023, 2, 15), StatusValid},
		{"on the limit day later hours", time.Date(2023, 2, 15, 23, 59, 0, 0, time.UTC), StatusValid},
		{"day after the limit", date(2023, 2, 16), StatusExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Evaluate(inv, GuaranteeCompany, prod, tc.claimDate)
			require.NoError(t, err)
			require.NotNil(t, d)
			assert.Equal(t, tc.want, d.Status)
		})
	}
}

func TestEvaluate_ZeroDurationNotDefined(t *testing.T) {
	inv := &InvoiceTerms{InvoiceID: id.New(), Date: timePtr(date(2023, 1, 15))}
	prod := &ProductTerms{ProductID: id.New()}

	d, err := Evaluate(inv, GuaranteeCompany, prod, date(2023, 6, 1))
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, StatusNotDefined, d.Status)
	assert.Equal(t, date(2023, 1, 15), d.LimitDate)
}

func timePtr(t time.Time) *time.Time { return &t }
