package order

// PriceItems fills in each item's subtotal from its captured unit price and
// returns the order total. All arithmetic is integer minor units; there is no
// floating point anywhere in the money path, so repeated runs over identical
// inputs produce identical totals.
func PriceItems(items []Item) int64 {
	var total int64
	for i := range items {
		items[i].SubtotalCents = items[i].Quantity * items[i].UnitPriceCents
		total += items[i].SubtotalCents
	}
	return total
}
