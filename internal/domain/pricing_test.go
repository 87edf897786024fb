package domain

import "testing"

func TestStayTotalCents(t *testing.T) {
	t.Parallel()

	t.Run("base price times nights plus extras", func(t *testing.T) {
		t.Parallel()
		extras := []ExtraSelection{{ExtraID: "extra-1", Name: "Breakfast", Quantity: 1, PriceCents: 25}}
		if got := StayTotalCents(100, 4, extras); got != 425 {
			t.Fatalf("expected total 425, got %d", got)
		}
	})

	t.Run("no extras", func(t *testing.T) {
		t.Parallel()
		if got := StayTotalCents(9900, 2, nil); got != 19800 {
			t.Fatalf("expected total 19800, got %d", got)
		}
	})
}

func TestSlotTotalCents(t *testing.T) {
	t.Parallel()

	extras := []ExtraSelection{
		{ExtraID: "extra-1", Quantity: 2, PriceCents: 500},
		{ExtraID: "extra-2", Quantity: 1, PriceCents: 1500},
	}
	if got := SlotTotalCents(2000, 3, extras); got != 8500 {
		t.Fatalf("expected total 8500, got %d", got)
	}
}

func TestUnitPriceCents(t *testing.T) {
	t.Parallel()

	svc := Service{BasePriceCents: 10000}

	t.Run("uses service base price", func(t *testing.T) {
		t.Parallel()
		if got := UnitPriceCents(Slot{}, svc); got != 10000 {
			t.Fatalf("expected 10000, got %d", got)
		}
	})

	t.Run("slot override wins", func(t *testing.T) {
		t.Parallel()
		override := int64(7500)
		if got := UnitPriceCents(Slot{PriceCents: &override}, svc); got != 7500 {
			t.Fatalf("expected 7500, got %d", got)
		}
	})
}
