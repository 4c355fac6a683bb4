package domain

import "time"

// StatusShare is one manually-entered percentage slice for a project.
type StatusShare struct {
	Status     string  `json:"status"`
	Percentage float64 `json:"percentage"`
}

// UnitStatus holds the per-project unit-status percentages shown on the
// dashboard. One row per project, keyed by ProjectID.
type UnitStatus struct {
	ID          string        `json:"id"`
	ProjectID   string        `json:"projectId"`
	ProjectName string        `json:"projectName"`
	TotalUnits  int           `json:"totalUnits"`
	Statuses    []StatusShare `json:"statuses"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// AllowedUnitStatuses are the only status labels the dashboard still uses.
// Older labels are purged by the cleanup endpoint.
func AllowedUnitStatuses() []string {
	return []string{"متاح للبيع", "مباع", "محجوز", "غير متاح"}
}
