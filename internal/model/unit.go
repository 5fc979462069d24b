package model

import "time"

// Unit is an organizational or process area that owns measurements and users.
type Unit struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description *string   `gorm:"type:varchar(500)" json:"description,omitempty"`
	Code        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g. "PROC-A"
	IsActive    bool      `gorm:"not null" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	Audit
}

// DefaultUnits are created on first start when the units table is empty.
var DefaultUnits = []Unit{
	{Name: "Process Engineering Unit A", Description: strPtr("Primary process control and monitoring unit"), Code: "PROC-A", IsActive: true},
	{Name: "Quality Control Lab", Description: strPtr("Quality assurance and testing laboratory"), Code: "QC-LAB", IsActive: true},
	{Name: "Maintenance Department", Description: strPtr("Equipment maintenance and reliability"), Code: "MAINT", IsActive: true},
	{Name: "Safety & Environmental", Description: strPtr("Safety monitoring and environmental compliance"), Code: "SAFE-ENV", IsActive: true},
}

// UnitSummary is the unit shape embedded in other responses.
type UnitSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func (u *Unit) Summary() *UnitSummary {
	if u == nil {
		return nil
	}
	return &UnitSummary{ID: u.ID, Name: u.Name, Code: u.Code}
}

func strPtr(s string) *string { return &s }
