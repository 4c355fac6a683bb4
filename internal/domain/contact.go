package domain

import "time"

// Audit actions recorded in contact_history.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionReset  = "reset"
)

// Canonical field names, in the order they appear on the settings screen.
// changedFields lists are always a subset of this slice, in this order.
const (
	FieldUnifiedPhone     = "unifiedPhone"
	FieldMarketingPhone   = "marketingPhone"
	FieldFloatingPhone    = "floatingPhone"
	FieldFloatingWhatsapp = "floatingWhatsapp"
)

// ContactFieldNames is the ordered list of the four phone fields.
func ContactFieldNames() []string {
	return []string{FieldUnifiedPhone, FieldMarketingPhone, FieldFloatingPhone, FieldFloatingWhatsapp}
}

// ContactSnapshot holds just the four phone values. It is what the API exposes
// and what history entries store as oldData/newData.
type ContactSnapshot struct {
	UnifiedPhone     string `json:"unifiedPhone"`
	MarketingPhone   string `json:"marketingPhone"`
	FloatingPhone    string `json:"floatingPhone"`
	FloatingWhatsapp string `json:"floatingWhatsapp"`
}

// DefaultContactNumbers returns the hardcoded values used to seed an empty
// store and to reset the record.
func DefaultContactNumbers() ContactSnapshot {
	return ContactSnapshot{
		UnifiedPhone:     "920031103",
		MarketingPhone:   "0500000000",
		FloatingPhone:    "0500000000",
		FloatingWhatsapp: "0500000000",
	}
}

// Field returns the value of the named phone field, "" for unknown names.
func (s ContactSnapshot) Field(name string) string {
	switch name {
	case FieldUnifiedPhone:
		return s.UnifiedPhone
	case FieldMarketingPhone:
		return s.MarketingPhone
	case FieldFloatingPhone:
		return s.FloatingPhone
	case FieldFloatingWhatsapp:
		return s.FloatingWhatsapp
	}
	return ""
}

// ContactNumbers is the soft-singleton record behind the contact settings
// screen. The collection is not constrained to one row; readers always treat
// the most recently created row as canonical.
type ContactNumbers struct {
	ID               string    `json:"id"`
	UnifiedPhone     string    `json:"unifiedPhone"`
	MarketingPhone   string    `json:"marketingPhone"`
	FloatingPhone    string    `json:"floatingPhone"`
	FloatingWhatsapp string    `json:"floatingWhatsapp"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// Snapshot extracts the four phone values.
func (c *ContactNumbers) Snapshot() ContactSnapshot {
	return ContactSnapshot{
		UnifiedPhone:     c.UnifiedPhone,
		MarketingPhone:   c.MarketingPhone,
		FloatingPhone:    c.FloatingPhone,
		FloatingWhatsapp: c.FloatingWhatsapp,
	}
}

// ContactHistory is one immutable audit entry. Entries are created after a
// successful mutation of ContactNumbers and are never updated afterwards.
type ContactHistory struct {
	ID            string           `json:"id"`
	Action        string           `json:"action"`
	OldData       *ContactSnapshot `json:"oldData,omitempty"`
	NewData       *ContactSnapshot `json:"newData,omitempty"`
	ChangedFields []string         `json:"changedFields,omitempty"`
	IPAddress     string           `json:"ipAddress,omitempty"`
	UserAgent     string           `json:"userAgent,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}
