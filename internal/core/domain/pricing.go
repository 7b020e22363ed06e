package domain

import "github.com/shopspring/decimal"

func StayPrice(r DateRange, nightlyRate decimal.Decimal) decimal.Decimal {
	return nightlyRate.Mul(decimal.NewFromInt(r.Nights()))
}

func TravelPrice(people int, basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(decimal.NewFromInt(int64(people)))
}

// OrderTotal sums quantity × snapshotted unit price over the items.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
