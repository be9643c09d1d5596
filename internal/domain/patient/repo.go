package patient

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no patient matches the lookup.
var ErrNotFound = errors.New("patient not found")

// Repository is the persistence boundary for patient records.
type Repository interface {
	Create(ctx context.Context, p *Patient) error
	List(ctx context.Context) ([]*Patient, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	Update(ctx context.Context, p *Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListHighBP(ctx context.Context) ([]*Patient, error)
	ListLowBP(ctx context.Context) ([]*Patient, error)
	ListFever(ctx context.Context) ([]*Patient, error)
}
