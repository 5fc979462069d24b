package model

// Audit holds the audit trail columns shared by units and measurements.
// Values are user ids, or "system" for rows written by seeding.
type Audit struct {
	CreatedBy string `gorm:"type:varchar(64)" json:"created_by"`
	UpdatedBy string `gorm:"type:varchar(64)" json:"updated_by"`
}

// SystemActor is recorded in audit columns for rows written at startup.
const SystemActor = "system"

// Stamp sets both audit columns for a newly created row.
func (a *Audit) Stamp(actor string) {
	a.CreatedBy = actor
	a.UpdatedBy = actor
}
