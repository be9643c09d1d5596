// Package patient implements patient vital-sign records: CRUD, threshold
// queries and the medication derivation applied on every write.
package patient

import (
	"time"

	"github.com/google/uuid"
)

// Patient is a stored vital-sign record. hasFever and medication are derived
// from the measured vitals on every write and are never client-settable.
type Patient struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Age         int       `db:"age" json:"age"`
	SystolicBP  float64   `db:"systolic_bp" json:"systolicbloodPressure"`
	DiastolicBP float64   `db:"diastolic_bp" json:"diastolicbloodPressure"`
	PulseRate   float64   `db:"pulse_rate" json:"pulseRate"`
	Temperature float64   `db:"temperature" json:"temperature"`
	HasFever    bool      `db:"has_fever" json:"hasFever"`
	Medication  string    `db:"medication" json:"medication"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CreatePatientInput carries a new record. Pointer fields distinguish absent
// values from zero measurements so validation can reject incomplete bodies.
type CreatePatientInput struct {
	Name        string   `json:"name"`
	Age         *int     `json:"age"`
	SystolicBP  *float64 `json:"systolicbloodPressure"`
	DiastolicBP *float64 `json:"diastolicbloodPressure"`
	PulseRate   *float64 `json:"pulseRate"`
	Temperature *float64 `json:"temperature"`
}

// UpdateVitalsInput is a partial update: only non-nil fields are applied.
type UpdateVitalsInput struct {
	SystolicBP  *float64 `json:"systolicbloodPressure"`
	DiastolicBP *float64 `json:"diastolicbloodPressure"`
	PulseRate   *float64 `json:"pulseRate"`
	Temperature *float64 `json:"temperature"`
}
