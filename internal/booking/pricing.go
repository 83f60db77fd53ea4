package booking

import "github.com/shopspring/decimal"

// Prices are whole currency units (rupiah-style), so amounts round to scale 0.
const currencyScale int32 = 0

type Pricing struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	TaxRate  decimal.Decimal
	Total    decimal.Decimal
}

// Quote computes the pricing snapshot at creation time:
//
//	subtotal = price * pax
//	tax      = round(subtotal * taxRate)
//	total    = subtotal + tax
//
// The snapshot is immutable for the life of the booking; status changes never
// recompute it.
func Quote(pricePerPax decimal.Decimal, pax int, taxRate decimal.Decimal) Pricing {
	subtotal := pricePerPax.Mul(decimal.NewFromInt(int64(pax))).Round(currencyScale)
	tax := subtotal.Mul(taxRate).Round(currencyScale)
	return Pricing{
		Subtotal: subtotal,
		Tax:      tax,
		TaxRate:  taxRate,
		Total:    subtotal.Add(tax),
	}
}
