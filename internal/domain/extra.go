package domain

// Extra is an add-on catalog item owned by the external CRUD surface.
type Extra struct {
	ID          string
	ServiceID   string
	Name        string
	PriceCents  int64
	MaxQuantity int
	Active      bool
}

// ExtraSelection is an add-on attached to a reservation. Name and PriceCents
// are snapshotted at booking time and never re-read from the catalog, so later
// catalog changes cannot alter an existing reservation's price.
type ExtraSelection struct {
	ExtraID    string
	Name       string
	Quantity   int
	PriceCents int64
}
