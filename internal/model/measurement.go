package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ValuePlaces is the fixed-point scale of measurement values and bounds.
const ValuePlaces = 4

// Measurement is one recorded sensor/process reading with validity metadata.
// IsValid and ValidationMessage are derived by validation.Check on every write.
type Measurement struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	ParameterName     string              `gorm:"type:varchar(100);not null;index" json:"parameter_name"` // e.g. "Temperature"
	Value             decimal.Decimal     `gorm:"type:decimal(18,4);not null" json:"value"`
	UnitOfMeasure     string              `gorm:"type:varchar(20);not null" json:"unit_of_measure"` // e.g. "°C", "bar"
	Notes             *string             `gorm:"type:varchar(500)" json:"notes,omitempty"`
	Timestamp         time.Time           `gorm:"column:recorded_at;not null;index" json:"timestamp"`
	UserID            uuid.UUID           `gorm:"type:uuid;not null;index" json:"user_id"`
	User              *User               `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UnitID            uint                `gorm:"not null;index" json:"unit_id"`
	Unit              *Unit               `gorm:"foreignKey:UnitID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	MinValue          decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"min_value"`
	MaxValue          decimal.NullDecimal `gorm:"type:decimal(18,4)" json:"max_value"`
	IsValid           bool                `gorm:"not null" json:"is_valid"`
	ValidationMessage *string             `gorm:"type:varchar(200)" json:"validation_message,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
	Audit
}

// Normalize rounds value and bounds to the stored scale and moves the
// timestamp to UTC so sqlite string comparisons order correctly.
func (m *Measurement) Normalize() {
	m.Value = m.Value.Round(ValuePlaces)
	if m.MinValue.Valid {
		m.MinValue.Decimal = m.MinValue.Decimal.Round(ValuePlaces)
	}
	if m.MaxValue.Valid {
		m.MaxValue.Decimal = m.MaxValue.Decimal.Round(ValuePlaces)
	}
	m.Timestamp = m.Timestamp.UTC()
}

// UserName returns the owning user's full name if the relation was loaded.
func (m *Measurement) UserName() string {
	if m.User == nil {
		return ""
	}
	return m.User.FullName()
}

// UnitName returns the owning unit's name if the relation was loaded.
func (m *Measurement) UnitName() string {
	if m.Unit == nil {
		return ""
	}
	return m.Unit.Name
}

// MeasurementResponse is the API shape with owner names resolved.
type MeasurementResponse struct {
	ID                uint                `json:"id"`
	ParameterName     string              `json:"parameter_name"`
	Value             decimal.Decimal     `json:"value"`
	UnitOfMeasure     string              `json:"unit_of_measure"`
	Notes             *string             `json:"notes,omitempty"`
	Timestamp         time.Time           `json:"timestamp"`
	UserID            uuid.UUID           `json:"user_id"`
	UserName          string              `json:"user_name"`
	Unit              *UnitSummary        `json:"unit,omitempty"`
	UnitID            uint                `json:"unit_id"`
	MinValue          decimal.NullDecimal `json:"min_value"`
	MaxValue          decimal.NullDecimal `json:"max_value"`
	IsValid           bool                `json:"is_valid"`
	ValidationMessage *string             `json:"validation_message,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// ToResponse converts Measurement to MeasurementResponse
func (m *Measurement) ToResponse() MeasurementResponse {
	return MeasurementResponse{
		ID:                m.ID,
		ParameterName:     m.ParameterName,
		Value:             m.Value,
		UnitOfMeasure:     m.UnitOfMeasure,
		Notes:             m.Notes,
		Timestamp:         m.Timestamp,
		UserID:            m.UserID,
		UserName:          m.UserName(),
		Unit:              m.Unit.Summary(),
		UnitID:            m.UnitID,
		MinValue:          m.MinValue,
		MaxValue:          m.MaxValue,
		IsValid:           m.IsValid,
		ValidationMessage: m.ValidationMessage,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// MeasurementResponses converts a slice in order.
func MeasurementResponses(ms []Measurement) []MeasurementResponse {
	out := make([]MeasurementResponse, len(ms))
	for i := range ms {
		out[i] = ms[i].ToResponse()
	}
	return out
}
