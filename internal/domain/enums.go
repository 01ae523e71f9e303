package domain

// ProductStatus is the desired publication state of a product
type ProductStatus string

const (
	StatusActive   ProductStatus = "active"
	StatusDraft    ProductStatus = "draft"
	StatusArchived ProductStatus = "archived"
)

// IsValid reports whether the status is one of the accepted values.
// An empty status is valid and means "active".
func (s ProductStatus) IsValid() bool {
	switch s {
	case "", StatusActive, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// OrDefault returns the status itself, or active when unset
func (s ProductStatus) OrDefault() ProductStatus {
	if s == "" {
		return StatusActive
	}
	return s
}
