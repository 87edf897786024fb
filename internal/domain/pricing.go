package domain

// UnitPriceCents resolves the effective per-seat/per-night price: the slot's
// override when present, else the service's base price.
func UnitPriceCents(slot Slot, svc Service) int64 {
	if slot.PriceCents != nil {
		return *slot.PriceCents
	}
	return svc.BasePriceCents
}

// SlotTotalCents prices a slot-based reservation. Extras arrive with their
// prices already resolved so the snapshot semantics stay explicit here.
func SlotTotalCents(unitPriceCents int64, quantity int, extras []ExtraSelection) int64 {
	return unitPriceCents*int64(quantity) + extrasTotalCents(extras)
}

// StayTotalCents prices a unit-based reservation over a number of nights.
func StayTotalCents(unitPriceCents int64, nights int, extras []ExtraSelection) int64 {
	return unitPriceCents*int64(nights) + extrasTotalCents(extras)
}

func extrasTotalCents(extras []ExtraSelection) int64 {
	var total int64
	for _, e := range extras {
		total += e.PriceCents * int64(e.Quantity)
	}
	return total
}
