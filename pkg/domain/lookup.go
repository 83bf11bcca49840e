package domain

// Lookup is a row of one of the static code tables (categories, classes,
// regions, ...). Members reference rows by ID.
type Lookup struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

// Code tables share the Lookup shape.
type (
	AlertType         = Lookup
	Category          = Lookup
	Class             = Lookup
	PaymentMethod     = Lookup
	Region            = Lookup
	LegalStructure    = Lookup
	Organisation      = Lookup
	EstimatingPackage = Lookup
)

// StaffMember is a staff user referenced by notes and relationship managers.
type StaffMember struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Phone  string `json:"phone,omitempty"`
	Role   string `json:"role,omitempty"`
	Active *bool  `json:"active,omitempty"`
}
