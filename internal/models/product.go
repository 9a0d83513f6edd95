package models

// ProductAvailability is the inventory status reported to the catalog.
type ProductAvailability string

const (
	AvailabilityInStock ProductAvailability = "IN_STOCK"
)
