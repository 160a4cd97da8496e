package models

// ListFilter narrows the inspection list. Dates are inclusive YYYY-MM-DD bounds.
type ListFilter struct {
	Status Status
	Search string
	From   string
	To     string
	Limit  int
}
