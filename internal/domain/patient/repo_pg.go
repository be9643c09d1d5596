package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const patientCols = "id, name, age, systolic_bp, diastolic_bp, pulse_rate, temperature, has_fever, medication, created_at, updated_at"

// RepoPG is the PostgreSQL implementation of Repository.
type RepoPG struct {
	pool *pgxpool.Pool
}

// NewRepoPG creates a RepoPG backed by the given pool.
func NewRepoPG(pool *pgxpool.Pool) *RepoPG {
	return &RepoPG{pool: pool}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.Name, &p.Age, &p.SystolicBP, &p.DiastolicBP,
		&p.PulseRate, &p.Temperature, &p.HasFever, &p.Medication,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan patient: %w", err)
	}
	return &p, nil
}

func collectPatients(rows pgx.Rows) ([]*Patient, error) {
	defer rows.Close()

	patients := make([]*Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate patients: %w", err)
	}
	return patients, nil
}

// Create inserts a patient and fills in the database timestamps.
func (r *RepoPG) Create(ctx context.Context, p *Patient) error {
	row := r.pool.QueryRow(ctx, `
        INSERT INTO patients (id, name, age, systolic_bp, diastolic_bp, pulse_rate, temperature, has_fever, medication)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Age, p.SystolicBP, p.DiastolicBP,
		p.PulseRate, p.Temperature, p.HasFever, p.Medication,
	)
	if err := row.Scan(&p.CreatedAt, &p.UpdatedAt); err != nil {
		return fmt.Errorf("insert patient: %w", err)
	}
	return nil
}

// List returns all patients in storage order.
func (r *RepoPG) List(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+patientCols+" FROM patients")
	if err != nil {
		return nil, fmt.Errorf("query patients: %w", err)
	}
	return collectPatients(rows)
}

// GetByID returns the patient with the given id, or ErrNotFound.
func (r *RepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT "+patientCols+" FROM patients WHERE id = $1", id)
	return scanPatient(row)
}

// Update persists the record's vitals and derived fields and refreshes
// updated_at.
func (r *RepoPG) Update(ctx context.Context, p *Patient) error {
	row := r.pool.QueryRow(ctx, `
        UPDATE patients
        SET systolic_bp = $2, diastolic_bp = $3, pulse_rate = $4,
            temperature = $5, has_fever = $6, medication = $7,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`,
		p.ID, p.SystolicBP, p.DiastolicBP, p.PulseRate,
		p.Temperature, p.HasFever, p.Medication,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update patient: %w", err)
	}
	return nil
}

// Delete removes the patient with the given id, or returns ErrNotFound.
func (r *RepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM patients WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete patient: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListHighBP returns patients with systolic blood pressure above 140.
func (r *RepoPG) ListHighBP(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+patientCols+" FROM patients WHERE systolic_bp > 140")
	if err != nil {
		return nil, fmt.Errorf("query high bp patients: %w", err)
	}
	return collectPatients(rows)
}

// ListLowBP returns patients with diastolic blood pressure below 70.
func (r *RepoPG) ListLowBP(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+patientCols+" FROM patients WHERE diastolic_bp < 70")
	if err != nil {
		return nil, fmt.Errorf("query low bp patients: %w", err)
	}
	return collectPatients(rows)
}

// ListFever returns patients flagged with a fever.
func (r *RepoPG) ListFever(ctx context.Context) ([]*Patient, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+patientCols+" FROM patients WHERE has_fever = TRUE")
	if err != nil {
		return nil, fmt.Errorf("query fever patients: %w", err)
	}
	return collectPatients(rows)
}
