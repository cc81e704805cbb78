package model

// SortOrder selects the ordering of a record listing.
type SortOrder string

var (
	// SortCreatedDesc lists the most recently created records first.
	SortCreatedDesc SortOrder = "created_desc"
	// SortMinedDesc lists the most recently mined records first.
	SortMinedDesc SortOrder = "mined_desc"
	// SortValueDesc lists the most valuable records first.
	SortValueDesc SortOrder = "value_desc"
)

// DefaultLimit bounds listings that do not ask for a smaller page.
const DefaultLimit = 10_000

// Filter narrows a query to a subset of records. Nil fields match everything.
type Filter struct {
	Mined *bool
}

// MinedFilter returns a filter on the mined flag.
func MinedFilter(mined bool) Filter {
	return Filter{Mined: &mined}
}

// Query describes a sorted and bounded record listing.
type Query struct {
	Filter Filter
	Sort   SortOrder
	Limit  uint64
}
