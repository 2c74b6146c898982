package services

import (
	"github.com/shopspring/decimal"

	"github.com/karanxgill/AllHoursCafe/entity"
)

// Quote is the server-side price breakdown for a cart. Clients may display
// their own math but the quote is what gets persisted and charged.
type Quote struct {
	SubTotal    decimal.Decimal `json:"subTotal"`
	Tax         decimal.Decimal `json:"tax"`
	DeliveryFee decimal.Decimal `json:"deliveryFee"`
	Total       decimal.Decimal `json:"total"`
}

type PricingEngine struct {
	TaxRate     decimal.Decimal
	DeliveryFee decimal.Decimal
}

func NewPricingEngine(taxRate, deliveryFee decimal.Decimal) *PricingEngine {
	return &PricingEngine{TaxRate: taxRate, DeliveryFee: deliveryFee}
}

// Price computes subtotal, tax and total for the cart. Tax is rounded to two
// places, half away from zero. Pickup orders carry no delivery fee.
func (p *PricingEngine) Price(lines []CartLine, orderType string) Quote {
	sub := decimal.Zero
	for _, l := range lines {
		sub = sub.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	sub = sub.Round(2)

	tax := sub.Mul(p.TaxRate).Round(2)

	fee := decimal.Zero
	if orderType == entity.OrderTypeDelivery {
		fee = p.DeliveryFee
	}

	return Quote{
		SubTotal:    sub,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       sub.Add(tax).Add(fee).Round(2),
	}
}
