package patient

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrValidation is returned when a create request is missing required
// fields.
var ErrValidation = errors.New("missing required fields")

// Service applies the vitals rules around the repository.
type Service struct {
	repo Repository
}

// NewService creates a patient Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create validates the input, derives the fever flag and medication, and
// stores the record.
func (s *Service) Create(ctx context.Context, input CreatePatientInput) (*Patient, error) {
	if input.Name == "" || input.Age == nil || input.SystolicBP == nil ||
		input.DiastolicBP == nil || input.PulseRate == nil || input.Temperature == nil {
		return nil, ErrValidation
	}

	p := &Patient{
		ID:          uuid.New(),
		Name:        input.Name,
		Age:         *input.Age,
		SystolicBP:  *input.SystolicBP,
		DiastolicBP: *input.DiastolicBP,
		PulseRate:   *input.PulseRate,
		Temperature: *input.Temperature,
	}
	p.HasFever = HasFever(p.Temperature)
	p.Medication = DetermineMedication(p.SystolicBP, p.DiastolicBP, p.HasFever)

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return p, nil
}

// List returns all patient records.
func (s *Service) List(ctx context.Context) ([]*Patient, error) {
	return s.repo.List(ctx)
}

// Get returns a single patient record.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateVitals applies the non-nil fields of the input to the stored record,
// re-derives the fever flag when the temperature changed, and recomputes the
// medication unconditionally. An empty input is a recompute no-op that
// returns the record unchanged apart from updated_at.
func (s *Service) UpdateVitals(ctx context.Context, id uuid.UUID, input UpdateVitalsInput) (*Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.SystolicBP != nil {
		p.SystolicBP = *input.SystolicBP
	}
	if input.DiastolicBP != nil {
		p.DiastolicBP = *input.DiastolicBP
	}
	if input.PulseRate != nil {
		p.PulseRate = *input.PulseRate
	}
	if input.Temperature != nil {
		p.Temperature = *input.Temperature
		p.HasFever = HasFever(p.Temperature)
	}
	p.Medication = DetermineMedication(p.SystolicBP, p.DiastolicBP, p.HasFever)

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update patient: %w", err)
	}
	return p, nil
}

// Delete removes a patient record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// ListHighBP returns patients with systolic blood pressure above 140.
func (s *Service) ListHighBP(ctx context.Context) ([]*Patient, error) {
	return s.repo.ListHighBP(ctx)
}

// ListLowBP returns patients with diastolic blood pressure below 70.
func (s *Service) ListLowBP(ctx context.Context) ([]*Patient, error) {
	return s.repo.ListLowBP(ctx)
}

// ListFever returns patients flagged with a fever.
func (s *Service) ListFever(ctx context.Context) ([]*Patient, error) {
	return s.repo.ListFever(ctx)
}
